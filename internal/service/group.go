package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"yatube/internal/domain"
	"yatube/internal/repository"

	"github.com/sirupsen/logrus"
)

const maxGroupTitleLen = 200

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// GroupService 管理社区。社区只能由管理员通过命令行创建。
type GroupService struct {
	groupRepo repository.GroupRepository
}

// NewGroupService 创建 GroupService 实例。
func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	if groupRepo == nil {
		panic("GroupRepository cannot be nil for GroupService")
	}
	return &GroupService{groupRepo: groupRepo}
}

// CreateGroup 创建社区，slug 必须唯一且只包含字母、数字、下划线和连字符。
func (s *GroupService) CreateGroup(ctx context.Context, title, slug, description string) (*domain.Group, error) {
	title, slug = strings.TrimSpace(title), strings.TrimSpace(slug)
	logCtx := logrus.WithFields(logrus.Fields{"title": title, "slug": slug})

	if title == "" || len([]rune(title)) > maxGroupTitleLen {
		return nil, fmt.Errorf("%w: title must be 1..%d characters", ErrInvalidInput, maxGroupTitleLen)
	}
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug %q may contain only letters, digits, '-' and '_'", ErrInvalidInput, slug)
	}

	group := &domain.Group{Title: title, Slug: slug, Description: strings.TrimSpace(description)}
	if err := s.groupRepo.Save(ctx, group); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Group slug already exists")
			return nil, ErrGroupSlugTaken
		}
		logCtx.WithError(err).Error("Failed to save group")
		return nil, ErrInternalServer
	}

	logCtx.WithField("group_id", group.ID).Info("Group created")
	return group, nil
}

// ListGroups 返回所有社区，用于帖子表单的下拉选项。
func (s *GroupService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list groups")
		return nil, ErrInternalServer
	}
	return groups, nil
}
