package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"yatube/internal/dto"
	"yatube/internal/repository"
	"yatube/internal/tasks"
)

// NotificationTypeNewPost 是新帖子通知的类型
const NotificationTypeNewPost = "new_post"

// PostFanoutHandler 把新帖子通知给作者的关注者
type PostFanoutHandler struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	bus        repository.NotificationBus
}

// NewPostFanoutHandler 创建 Handler 实例
func NewPostFanoutHandler(postRepo repository.PostRepository, followRepo repository.FollowRepository, bus repository.NotificationBus) *PostFanoutHandler {
	if postRepo == nil || followRepo == nil || bus == nil {
		panic("Dependencies cannot be nil for PostFanoutHandler")
	}
	return &PostFanoutHandler{postRepo: postRepo, followRepo: followRepo, bus: bus}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *PostFanoutHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := taskLogger(ctx, t)

	payload, err := tasks.ParsePostFanoutPayload(t.Payload())
	if err != nil {
		logCtx.WithError(err).Error("Failed to parse task payload")
		return fmt.Errorf("failed to parse payload: %v: %w", err, asynq.SkipRetry)
	}
	logCtx = logCtx.WithField("post_id", payload.PostID)

	post, err := h.postRepo.FindByID(ctx, payload.PostID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			// 帖子在任务执行前被删除
			logCtx.Warn("Post no longer exists, skipping fanout")
			return fmt.Errorf("post %d not found: %v: %w", payload.PostID, err, asynq.SkipRetry)
		}
		return fmt.Errorf("failed to load post %d: %w", payload.PostID, err)
	}

	followerIDs, err := h.followRepo.ListFollowerIDs(ctx, post.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to list followers of %d: %w", post.AuthorID, err)
	}
	if len(followerIDs) == 0 {
		logCtx.Debug("Author has no followers, nothing to notify")
		return nil
	}

	message, err := json.Marshal(dto.Notification{Type: NotificationTypeNewPost, Post: dto.NewPostView(*post)})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %v: %w", err, asynq.SkipRetry)
	}
	if err := h.bus.Publish(ctx, followerIDs, message); err != nil {
		return fmt.Errorf("failed to publish notification for post %d: %w", payload.PostID, err)
	}

	logCtx.WithField("followers", len(followerIDs)).Info("Post fanout task processed successfully")
	return nil
}
