package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"yatube/internal/domain"
	"yatube/internal/dto"
	"yatube/internal/feed"
	"yatube/internal/metrics"
	"yatube/internal/repository"

	"github.com/sirupsen/logrus"
)

// IndexTitle 是全站 feed 的标题
const IndexTitle = "Latest updates on the site"

// GroupFeed 是社区 feed 的一页
type GroupFeed struct {
	Group *domain.Group
	Page  *domain.PostPage
}

// ProfileFeed 是个人主页的一页
type ProfileFeed struct {
	Author         *domain.User
	Page           *domain.PostPage
	Following      bool // 当前访问者是否已关注该作者
	FollowersCount int64
	FollowingCount int64
}

// FeedService 组装各类分页 feed。全站 feed 的响应体会被缓存。
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	cache      repository.FeedCache
}

// NewFeedService 创建 FeedService 实例。
func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	cache repository.FeedCache,
) *FeedService {
	if postRepo == nil || groupRepo == nil || userRepo == nil || followRepo == nil {
		panic("Repositories cannot be nil for FeedService")
	}
	if cache == nil {
		panic("FeedCache cannot be nil for FeedService")
	}
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		cache:      cache,
	}
}

// IndexCacheKey 返回全站 feed 第 page 页的缓存键
func IndexCacheKey(page int) string {
	return fmt.Sprintf("index:page=%d", page)
}

// GlobalFeed 返回全站 feed 第 requestedPage 页序列化后的响应体。
// 缓存命中时直接返回缓存内容，期间发布的新帖子要等缓存过期或被清空后才会出现。
func (s *FeedService) GlobalFeed(ctx context.Context, requestedPage int) ([]byte, error) {
	key := IndexCacheKey(requestedPage)
	logCtx := logrus.WithField("cache_key", key)

	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		metrics.FeedCacheLookups.WithLabelValues(metrics.CacheHit).Inc()
		return cached, nil
	case errors.Is(err, repository.ErrCacheMiss):
		metrics.FeedCacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
	default:
		// 缓存不可用时退回数据库
		metrics.FeedCacheLookups.WithLabelValues(metrics.CacheError).Inc()
		logCtx.WithError(err).Warn("Feed cache read failed")
	}

	page, err := s.page(ctx, repository.PostFilter{}, requestedPage, logCtx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(dto.IndexView{Title: IndexTitle, Page: dto.NewPageView(page)})
	if err != nil {
		logCtx.WithError(err).Error("Failed to encode index feed")
		return nil, ErrInternalServer
	}

	if err := s.cache.Set(ctx, key, payload); err != nil {
		logCtx.WithError(err).Warn("Feed cache write failed")
	}
	return payload, nil
}

// GroupFeed 返回社区 slug 的帖子。
func (s *FeedService) GroupFeed(ctx context.Context, slug string, requestedPage int) (*GroupFeed, error) {
	logCtx := logrus.WithField("group_slug", slug)

	group, err := s.groupRepo.FindBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, repository.ErrGroupNotFound) {
			logCtx.WithError(err).Error("Failed to load group")
		}
		return nil, mapRepoError(err, ErrGroupNotFound)
	}

	groupID := group.ID
	page, err := s.page(ctx, repository.PostFilter{GroupID: &groupID}, requestedPage, logCtx)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: group, Page: page}, nil
}

// ProfileFeed 返回 username 发布的帖子，viewerID 为 0 表示匿名访问。
func (s *FeedService) ProfileFeed(ctx context.Context, username string, viewerID uint, requestedPage int) (*ProfileFeed, error) {
	logCtx := logrus.WithFields(logrus.Fields{"author": username, "viewer_id": viewerID})

	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			logCtx.WithError(err).Error("Failed to load author")
		}
		return nil, mapRepoError(err, ErrProfileNotFound)
	}
	author.Password = ""

	authorID := author.ID
	page, err := s.page(ctx, repository.PostFilter{AuthorID: &authorID}, requestedPage, logCtx)
	if err != nil {
		return nil, err
	}

	result := &ProfileFeed{Author: author, Page: page}
	if viewerID != 0 && viewerID != authorID {
		if result.Following, err = s.followRepo.Exists(ctx, viewerID, authorID); err != nil {
			logCtx.WithError(err).Error("Failed to check follow")
			return nil, ErrInternalServer
		}
	}
	if result.FollowersCount, err = s.followRepo.CountFollowers(ctx, authorID); err != nil {
		logCtx.WithError(err).Error("Failed to count followers")
		return nil, ErrInternalServer
	}
	if result.FollowingCount, err = s.followRepo.CountFollowing(ctx, authorID); err != nil {
		logCtx.WithError(err).Error("Failed to count following")
		return nil, ErrInternalServer
	}
	return result, nil
}

// FollowFeed 返回 userID 关注的作者发布的帖子。
func (s *FeedService) FollowFeed(ctx context.Context, userID uint, requestedPage int) (*domain.PostPage, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	logCtx := logrus.WithField("user_id", userID)
	return s.page(ctx, repository.PostFilter{FollowerID: &userID}, requestedPage, logCtx)
}

// ClearCache 清空全站 feed 缓存。
func (s *FeedService) ClearCache(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		logrus.WithError(err).Error("Failed to clear feed cache")
		return ErrInternalServer
	}
	logrus.Info("Feed cache cleared")
	return nil
}

// page 计数、定位页码并读取该页帖子
func (s *FeedService) page(ctx context.Context, filter repository.PostFilter, requested int, logCtx *logrus.Entry) (*domain.PostPage, error) {
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		logCtx.WithError(err).Error("Failed to count posts")
		return nil, ErrInternalServer
	}

	w := feed.Paginate(total, requested, feed.PageSize)
	result := &domain.PostPage{Number: w.Number, NumPages: w.NumPages, TotalCount: total}
	if total == 0 {
		result.Posts = []domain.Post{}
		return result, nil
	}

	posts, err := s.postRepo.List(ctx, filter, w.Offset, w.Limit)
	if err != nil {
		logCtx.WithError(err).Error("Failed to list posts")
		return nil, ErrInternalServer
	}
	result.Posts = posts
	return result, nil
}
