package service

import (
	"context"
	"errors"

	"yatube/internal/domain"
	"yatube/internal/forms"
	"yatube/internal/repository"
	"yatube/internal/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// TaskEnqueuer 把后台任务放入队列，*asynq.Client 满足此接口
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// PostDetail 是帖子详情页需要的数据
type PostDetail struct {
	Post             *domain.Post
	Comments         []domain.Comment
	AuthorPostsCount int64
}

// PostService 负责帖子和评论的创建、编辑和删除。
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	validator   *forms.PostValidator
	images      repository.ImageStorage
	enqueuer    TaskEnqueuer // 为 nil 时不发送关注通知
}

// NewPostService 创建 PostService 实例。
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	groupRepo repository.GroupRepository,
	images repository.ImageStorage,
	enqueuer TaskEnqueuer,
) *PostService {
	if postRepo == nil || commentRepo == nil || groupRepo == nil {
		panic("Repositories cannot be nil for PostService")
	}
	if images == nil {
		panic("ImageStorage cannot be nil for PostService")
	}
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		validator:   forms.NewPostValidator(groupRepo),
		images:      images,
		enqueuer:    enqueuer,
	}
}

// CreatePost 校验表单并以 authorID 的身份发布帖子。
// 表单错误以 *forms.ValidationError 返回，此时不会写入任何数据。
func (s *PostService) CreatePost(ctx context.Context, authorID uint, in forms.PostInput) (*domain.Post, error) {
	if authorID == 0 {
		return nil, ErrUnauthenticated
	}
	logCtx := logrus.WithField("author_id", authorID)

	data, err := s.validate(ctx, in, logCtx)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		AuthorID: authorID,
		Text:     data.Text,
		GroupID:  data.GroupID,
		Group:    data.Group,
	}
	if data.Image != nil {
		path, err := s.storeImage(ctx, data.Image)
		if err != nil {
			logCtx.WithError(err).Error("Failed to store post image")
			return nil, ErrInternalServer
		}
		post.Image = path
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		logCtx.WithError(err).Error("Failed to save new post")
		s.discardImage(ctx, post.Image, logCtx)
		return nil, ErrInternalServer
	}
	logCtx = logCtx.WithField("post_id", post.ID)
	logCtx.Info("Post created successfully")

	s.enqueueFanout(ctx, post, logCtx)
	return post, nil
}

// GetPost 返回帖子详情：帖子本身、评论和作者的帖子总数。
func (s *PostService) GetPost(ctx context.Context, postID uint) (*PostDetail, error) {
	logCtx := logrus.WithField("post_id", postID)

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if !errors.Is(err, repository.ErrPostNotFound) {
			logCtx.WithError(err).Error("Failed to load post")
		}
		return nil, mapRepoError(err, ErrPostNotFound)
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to load comments")
		return nil, ErrInternalServer
	}

	authorID := post.AuthorID
	count, err := s.postRepo.Count(ctx, repository.PostFilter{AuthorID: &authorID})
	if err != nil {
		logCtx.WithError(err).Error("Failed to count author posts")
		return nil, ErrInternalServer
	}

	return &PostDetail{Post: post, Comments: comments, AuthorPostsCount: count}, nil
}

// GetPostForEdit 返回 userID 有权编辑的帖子。
func (s *PostService) GetPostForEdit(ctx context.Context, userID, postID uint) (*domain.Post, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	return s.loadOwned(ctx, userID, postID, logrus.WithFields(logrus.Fields{"user_id": userID, "post_id": postID}))
}

// EditPost 更新帖子。只有作者可以编辑；没有上传新图片时保留原图。
func (s *PostService) EditPost(ctx context.Context, userID, postID uint, in forms.PostInput) (*domain.Post, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "post_id": postID})

	post, err := s.loadOwned(ctx, userID, postID, logCtx)
	if err != nil {
		return nil, err
	}

	data, err := s.validate(ctx, in, logCtx)
	if err != nil {
		return nil, err
	}

	oldImage := post.Image
	post.Text = data.Text
	post.GroupID = data.GroupID
	post.Group = data.Group
	if data.Image != nil {
		path, err := s.storeImage(ctx, data.Image)
		if err != nil {
			logCtx.WithError(err).Error("Failed to store post image")
			return nil, ErrInternalServer
		}
		post.Image = path
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if post.Image != oldImage {
			s.discardImage(ctx, post.Image, logCtx)
		}
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logCtx.WithError(err).Error("Failed to update post")
		return nil, ErrInternalServer
	}
	if post.Image != oldImage {
		s.discardImage(ctx, oldImage, logCtx)
	}

	logCtx.Info("Post updated successfully")
	return post, nil
}

// DeletePost 删除帖子及其评论，只有作者可以删除。
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	if userID == 0 {
		return ErrUnauthenticated
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "post_id": postID})

	post, err := s.loadOwned(ctx, userID, postID, logCtx)
	if err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		logCtx.WithError(err).Error("Failed to delete post")
		return ErrInternalServer
	}
	s.discardImage(ctx, post.Image, logCtx)

	logCtx.Info("Post deleted successfully")
	return nil
}

// AddComment 以 userID 的身份评论帖子。匿名用户返回 ErrUnauthenticated 且不写入任何数据。
func (s *PostService) AddComment(ctx context.Context, userID, postID uint, in forms.CommentInput) (*domain.Comment, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "post_id": postID})
	if userID == 0 {
		logCtx.Debug("Anonymous comment rejected")
		return nil, ErrUnauthenticated
	}

	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if !errors.Is(err, repository.ErrPostNotFound) {
			logCtx.WithError(err).Error("Failed to load post for comment")
		}
		return nil, mapRepoError(err, ErrPostNotFound)
	}

	data, err := forms.ValidateComment(in)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{PostID: postID, AuthorID: userID, Text: data.Text}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		logCtx.WithError(err).Error("Failed to save comment")
		return nil, ErrInternalServer
	}

	logCtx.WithField("comment_id", comment.ID).Info("Comment added")
	return comment, nil
}

// --- 私有辅助函数 ---

// validate 校验帖子表单，表单错误原样返回，其他错误转换为 ErrInternalServer
func (s *PostService) validate(ctx context.Context, in forms.PostInput, logCtx *logrus.Entry) (*forms.PostData, error) {
	data, err := s.validator.Validate(ctx, in)
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			logCtx.WithField("fields", verr.FieldErrors()).Debug("Post form rejected")
			return nil, err
		}
		logCtx.WithError(err).Error("Failed to validate post form")
		return nil, ErrInternalServer
	}
	return data, nil
}

// loadOwned 加载帖子并检查 userID 是否为作者
func (s *PostService) loadOwned(ctx context.Context, userID, postID uint, logCtx *logrus.Entry) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if !errors.Is(err, repository.ErrPostNotFound) {
			logCtx.WithError(err).Error("Failed to load post")
		}
		return nil, mapRepoError(err, ErrPostNotFound)
	}
	if !post.IsAuthoredBy(userID) {
		logCtx.WithField("author_id", post.AuthorID).Warn("Non-author tried to change post")
		return nil, ErrForbidden
	}
	return post, nil
}

// storeImage 以随机文件名保存图片
func (s *PostService) storeImage(ctx context.Context, img *forms.Image) (string, error) {
	return s.images.Save(ctx, uuid.NewString()+img.Ext(), img.Data)
}

// discardImage 删除不再使用的图片，失败时只记录日志，遗留文件由 image:sweep 清理
func (s *PostService) discardImage(ctx context.Context, path string, logCtx *logrus.Entry) {
	if path == "" {
		return
	}
	if err := s.images.Delete(ctx, path); err != nil {
		logCtx.WithError(err).WithField("image", path).Warn("Failed to delete image")
	}
}

func (s *PostService) enqueueFanout(ctx context.Context, post *domain.Post, logCtx *logrus.Entry) {
	if s.enqueuer == nil {
		return
	}
	payload, err := tasks.NewPostFanoutTask(post.ID, post.AuthorID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to create post fanout task payload")
		return
	}
	task := asynq.NewTask(tasks.TypePostFanout, payload)
	info, err := s.enqueuer.EnqueueContext(ctx, task, asynq.Queue(tasks.QueueDefault), asynq.MaxRetry(3))
	if err != nil {
		// 通知是尽力而为的，帖子已经发布成功
		logCtx.WithError(err).Error("Failed to enqueue post fanout task")
		return
	}
	logCtx.WithField("task_id", info.ID).Debug("Post fanout task enqueued")
}
