package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"yatube/internal/repository"
)

// DefaultImageGracePeriod 是未被引用的图片被删除前的最短存在时间，
// 避免删掉刚上传、帖子还没保存的图片
const DefaultImageGracePeriod = time.Hour

// ImageSweepHandler 删除不再被任何帖子引用的图片
type ImageSweepHandler struct {
	postRepo    repository.PostRepository
	images      repository.ImageStorage
	gracePeriod time.Duration
	now         func() time.Time
}

// NewImageSweepHandler 创建 Handler 实例
func NewImageSweepHandler(postRepo repository.PostRepository, images repository.ImageStorage, gracePeriod time.Duration) *ImageSweepHandler {
	if postRepo == nil || images == nil {
		panic("Dependencies cannot be nil for ImageSweepHandler")
	}
	if gracePeriod <= 0 {
		gracePeriod = DefaultImageGracePeriod
	}
	return &ImageSweepHandler{postRepo: postRepo, images: images, gracePeriod: gracePeriod, now: time.Now}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *ImageSweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := taskLogger(ctx, t)
	logCtx.Info("Processing periodic image sweep task...")

	referenced, err := h.postRepo.ListImagePaths(ctx)
	if err != nil {
		return fmt.Errorf("failed to list referenced images: %w", err)
	}
	inUse := make(map[string]struct{}, len(referenced))
	for _, p := range referenced {
		inUse[p] = struct{}{}
	}

	stored, err := h.images.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stored images: %w", err)
	}

	cutoff := h.now().Add(-h.gracePeriod)
	removed, failed := 0, 0
	for _, img := range stored {
		if _, ok := inUse[img.Path]; ok || img.ModTime.After(cutoff) {
			continue
		}
		if err := h.images.Delete(ctx, img.Path); err != nil {
			logCtx.WithError(err).WithField("image", img.Path).Warn("Failed to delete orphaned image")
			failed++
			continue
		}
		removed++
	}

	logCtx.WithFields(logrus.Fields{
		"stored":  len(stored),
		"removed": removed,
		"failed":  failed,
	}).Info("Image sweep task processed")
	return nil
}
