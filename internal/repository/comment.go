package repository

import (
	"context"

	"yatube/internal/domain"
)

// CommentRepository 定义了评论数据的存储和检索操作。
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	// ListByPost 按创建时间正序返回帖子的评论，预加载作者。
	ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error)
}
