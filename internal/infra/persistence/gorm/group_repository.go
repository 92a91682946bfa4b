package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"yatube/internal/domain"
	"yatube/internal/repository"
)

// GormGroupRepository 是 GroupRepository 接口的 GORM 实现
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository 创建 GormGroupRepository 实例
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	if db == nil {
		panic("database connection cannot be nil for GormGroupRepository")
	}
	return &GormGroupRepository{db: db}
}

// FindByID 根据 ID 查找社区
func (r *GormGroupRepository) FindByID(ctx context.Context, id uint) (*domain.Group, error) {
	var group domain.Group
	err := r.db.WithContext(ctx).First(&group, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGroupNotFound
		}
		return nil, fmt.Errorf("gorm: find group by id %d: %w", id, err)
	}
	return &group, nil
}

// FindBySlug 根据 slug 查找社区
func (r *GormGroupRepository) FindBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	var group domain.Group
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGroupNotFound
		}
		return nil, fmt.Errorf("gorm: find group by slug '%s': %w", slug, err)
	}
	return &group, nil
}

// Save 创建或更新社区
func (r *GormGroupRepository) Save(ctx context.Context, group *domain.Group) error {
	err := r.db.WithContext(ctx).Save(group).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save group (id: %d, slug: %s): %w", group.ID, group.Slug, err)
	}
	return nil
}

// List 按标题返回所有社区
func (r *GormGroupRepository) List(ctx context.Context) ([]domain.Group, error) {
	var groups []domain.Group
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("gorm: list groups: %w", err)
	}
	return groups, nil
}
