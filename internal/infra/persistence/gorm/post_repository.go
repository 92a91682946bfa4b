package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/domain"
	"yatube/internal/repository"
)

// GormPostRepository 是 PostRepository 接口的 GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository 创建 GormPostRepository 实例
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

// FindByID 根据 ID 查找帖子，预加载作者和社区
func (r *GormPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("gorm: find post by id %d: %w", id, err)
	}
	return &post, nil
}

// Create 保存新帖子，不写入关联的作者和社区
func (r *GormPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return fmt.Errorf("gorm: create post (author_id: %d): %w", post.AuthorID, err)
	}
	return nil
}

// Update 只更新可编辑的字段：文本、社区、图片
func (r *GormPostRepository) Update(ctx context.Context, post *domain.Post) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Post{ID: post.ID}).
		// 使用 map 更新，GroupID 为 nil 时 group_id 也会被置为 NULL
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
	if err != nil {
		return fmt.Errorf("gorm: update post %d: %w", post.ID, err)
	}
	return nil
}

// Delete 在一个事务中删除帖子的评论和帖子本身
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先删评论，再删帖子
		if err := tx.Where("post_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return fmt.Errorf("gorm: delete comments of post %d: %w", id, err)
		}
		result := tx.Delete(&domain.Post{}, id)
		if result.Error != nil {
			return fmt.Errorf("gorm: delete post %d: %w", id, result.Error)
		}
		// 没有删除任何行，说明帖子不存在，事务回滚
		if result.RowsAffected == 0 {
			return repository.ErrPostNotFound
		}
		return nil
	})
}

// filtered 根据 PostFilter 构造基础查询
func (r *GormPostRepository) filtered(ctx context.Context, filter repository.PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Post{})
	if filter.GroupID != nil {
		q = q.Where("posts.group_id = ?", *filter.GroupID)
	}
	if filter.AuthorID != nil {
		q = q.Where("posts.author_id = ?", *filter.AuthorID)
	}
	if filter.FollowerID != nil {
		// 关注流：只保留 follower 关注的作者的帖子
		q = q.Joins("JOIN follows ON follows.author_id = posts.author_id").
			Where("follows.user_id = ?", *filter.FollowerID)
	}
	return q
}

// List 按发布时间倒序分页返回帖子
func (r *GormPostRepository) List(ctx context.Context, filter repository.PostFilter, offset, limit int) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.filtered(ctx, filter).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC").
		Order("posts.id DESC"). // 同一时间发布的帖子按 ID 排序，分页结果稳定
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list posts (offset %d, limit %d): %w", offset, limit, err)
	}
	return posts, nil
}

// Count 返回匹配的帖子数
func (r *GormPostRepository) Count(ctx context.Context, filter repository.PostFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm: count posts: %w", err)
	}
	return count, nil
}

// ListImagePaths 返回所有非空的图片路径
func (r *GormPostRepository) ListImagePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).Model(&domain.Post{}).Where("image <> ?", "").Pluck("image", &paths).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list post image paths: %w", err)
	}
	return paths, nil
}
