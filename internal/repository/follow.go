package repository

import (
	"context"

	"yatube/internal/domain"
)

// FollowRepository 定义了关注关系的存储操作。
type FollowRepository interface {
	// Create 保存关注关系。(user, author) 已存在时返回 ErrDuplicateEntry。
	Create(ctx context.Context, follow *domain.Follow) error

	// Delete 删除关注关系，返回是否真的删除了记录。
	Delete(ctx context.Context, userID, authorID uint) (bool, error)

	// Exists 检查 userID 是否关注了 authorID。
	Exists(ctx context.Context, userID, authorID uint) (bool, error)

	// ListFollowerIDs 返回关注 authorID 的所有用户 ID。
	ListFollowerIDs(ctx context.Context, authorID uint) ([]uint, error)

	CountFollowers(ctx context.Context, authorID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
}
