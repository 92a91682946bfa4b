package service

import (
	"context"
	"errors"

	"yatube/internal/domain"
	"yatube/internal/repository"

	"github.com/sirupsen/logrus"
)

// FollowService 管理用户之间的关注关系。
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService 创建 FollowService 实例。
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	if followRepo == nil || userRepo == nil {
		panic("Repositories cannot be nil for FollowService")
	}
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow 让 userID 关注 username。关注自己或重复关注时什么也不做。
func (s *FollowService) Follow(ctx context.Context, userID uint, username string) (*domain.User, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "author": username})

	author, err := s.findAuthor(ctx, username, logCtx)
	if err != nil {
		return nil, err
	}
	if author.ID == userID {
		logCtx.Debug("Ignoring self-follow")
		return author, nil
	}

	exists, err := s.followRepo.Exists(ctx, userID, author.ID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to check follow")
		return nil, ErrInternalServer
	}
	if exists {
		return author, nil
	}

	if err := s.followRepo.Create(ctx, &domain.Follow{UserID: userID, AuthorID: author.ID}); err != nil {
		// 并发的重复请求由唯一索引拦下
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return author, nil
		}
		logCtx.WithError(err).Error("Failed to save follow")
		return nil, ErrInternalServer
	}

	logCtx.Info("User followed author")
	return author, nil
}

// Unfollow 取消 userID 对 username 的关注，没有关注时什么也不做。
func (s *FollowService) Unfollow(ctx context.Context, userID uint, username string) (*domain.User, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "author": username})

	author, err := s.findAuthor(ctx, username, logCtx)
	if err != nil {
		return nil, err
	}

	deleted, err := s.followRepo.Delete(ctx, userID, author.ID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to delete follow")
		return nil, ErrInternalServer
	}
	if deleted {
		logCtx.Info("User unfollowed author")
	}
	return author, nil
}

// IsFollowing 报告 userID 是否关注了 authorID，匿名用户总是 false。
func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	if userID == 0 || userID == authorID {
		return false, nil
	}
	ok, err := s.followRepo.Exists(ctx, userID, authorID)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"user_id": userID, "author_id": authorID}).Error("Failed to check follow")
		return false, ErrInternalServer
	}
	return ok, nil
}

func (s *FollowService) findAuthor(ctx context.Context, username string, logCtx *logrus.Entry) (*domain.User, error) {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			logCtx.WithError(err).Error("Failed to load author")
		}
		return nil, mapRepoError(err, ErrProfileNotFound)
	}
	return author, nil
}
