package repository

import (
	"context"

	"yatube/internal/domain"
)

// PostFilter 描述 feed 的过滤条件，零值表示全部帖子。
// 多个条件同时设置时取交集。
type PostFilter struct {
	GroupID    *uint // 社区 feed
	AuthorID   *uint // 个人主页 feed
	FollowerID *uint // 关注 feed：FollowerID 关注的作者发布的帖子
}

// PostRepository 定义了帖子数据的存储和检索操作。
type PostRepository interface {
	// FindByID 查找帖子并预加载作者和社区，不存在时返回 ErrPostNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Post, error)

	// Create 保存新帖子。
	Create(ctx context.Context, post *domain.Post) error

	// Update 更新帖子的文本、社区和图片。
	Update(ctx context.Context, post *domain.Post) error

	// Delete 删除帖子及其评论，不存在时返回 ErrPostNotFound。
	Delete(ctx context.Context, id uint) error

	// List 按发布时间倒序返回匹配 filter 的帖子，预加载作者和社区。
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]domain.Post, error)

	// Count 返回匹配 filter 的帖子数量。
	Count(ctx context.Context, filter PostFilter) (int64, error)

	// ListImagePaths 返回所有仍被帖子引用的图片路径。
	ListImagePaths(ctx context.Context) ([]string, error)
}
