package repository

import (
	"context"

	"yatube/internal/domain"
)

// GroupRepository 定义了社区数据的存储和检索操作。
type GroupRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Group, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Group, error)
	// Save 创建或更新社区。slug 冲突时返回 ErrDuplicateEntry。
	Save(ctx context.Context, group *domain.Group) error
	// List 按标题排序返回所有社区。
	List(ctx context.Context) ([]domain.Group, error)
}
