package service_test

import (
	"context"
	"testing"

	"yatube/internal/domain"
	"yatube/internal/repository"
	"yatube/internal/repository/mocks"
	"yatube/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGroupService_CreateGroup(t *testing.T) {
	groups := new(mocks.GroupRepository)
	svc := service.NewGroupService(groups)
	ctx := context.Background()

	groups.On("Save", ctx, &domain.Group{Title: "Cats", Slug: "cats_2", Description: "All about cats"}).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Group).ID = 9 }).
		Return(nil).Once()

	group, err := svc.CreateGroup(ctx, " Cats ", "cats_2", "All about cats")

	require.NoError(t, err)
	assert.Equal(t, uint(9), group.ID)
	groups.AssertExpectations(t)
}

func TestGroupService_CreateGroup_InvalidInput(t *testing.T) {
	groups := new(mocks.GroupRepository)
	svc := service.NewGroupService(groups)

	for _, tc := range []struct{ title, slug string }{
		{"", "cats"},
		{"Cats", ""},
		{"Cats", "with space"},
		{"Cats", "кошки"},
	} {
		_, err := svc.CreateGroup(context.Background(), tc.title, tc.slug, "")
		assert.ErrorIs(t, err, service.ErrInvalidInput, "title=%q slug=%q", tc.title, tc.slug)
	}
	groups.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGroupService_CreateGroup_DuplicateSlug(t *testing.T) {
	groups := new(mocks.GroupRepository)
	svc := service.NewGroupService(groups)
	ctx := context.Background()

	groups.On("Save", ctx, mock.Anything).Return(repository.ErrDuplicateEntry).Once()

	_, err := svc.CreateGroup(ctx, "Cats", "cats", "")

	assert.ErrorIs(t, err, service.ErrGroupSlugTaken)
}
