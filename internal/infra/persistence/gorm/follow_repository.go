package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/domain"
	"yatube/internal/repository"
)

// GormFollowRepository 是 FollowRepository 接口的 GORM 实现。
// 并发重复关注依赖 idx_follow_pair 唯一索引拒绝。
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository 创建 GormFollowRepository 实例
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	if db == nil {
		panic("database connection cannot be nil for GormFollowRepository")
	}
	return &GormFollowRepository{db: db}
}

// Create 保存关注关系，重复时返回 repository.ErrDuplicateEntry
func (r *GormFollowRepository) Create(ctx context.Context, follow *domain.Follow) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(follow).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create follow (user_id: %d, author_id: %d): %w", follow.UserID, follow.AuthorID, err)
	}
	return nil
}

// Delete 删除关注关系
func (r *GormFollowRepository) Delete(ctx context.Context, userID, authorID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&domain.Follow{})
	if result.Error != nil {
		return false, fmt.Errorf("gorm: delete follow (user_id: %d, author_id: %d): %w", userID, authorID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Exists 检查关注关系是否存在
func (r *GormFollowRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: check follow (user_id: %d, author_id: %d): %w", userID, authorID, err)
	}
	return count > 0, nil
}

// ListFollowerIDs 返回作者的所有关注者 ID
func (r *GormFollowRepository) ListFollowerIDs(ctx context.Context, authorID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("author_id = ?", authorID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list followers of %d: %w", authorID, err)
	}
	return ids, nil
}

// CountFollowers 返回关注该作者的人数
func (r *GormFollowRepository) CountFollowers(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Follow{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm: count followers of %d: %w", authorID, err)
	}
	return count, nil
}

// CountFollowing 返回该用户关注的作者数
func (r *GormFollowRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Follow{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm: count following of %d: %w", userID, err)
	}
	return count, nil
}
