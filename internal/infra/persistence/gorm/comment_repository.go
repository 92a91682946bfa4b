package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/domain"
)

// GormCommentRepository 是 CommentRepository 接口的 GORM 实现
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository 创建 GormCommentRepository 实例
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	if db == nil {
		panic("database connection cannot be nil for GormCommentRepository")
	}
	return &GormCommentRepository{db: db}
}

// Create 保存新评论
func (r *GormCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("gorm: create comment (post_id: %d, author_id: %d): %w", comment.PostID, comment.AuthorID, err)
	}
	return nil
}

// ListByPost 返回帖子的全部评论，旧的在前
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list comments of post %d: %w", postID, err)
	}
	return comments, nil
}
