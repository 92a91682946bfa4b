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

func TestFollowService_Follow_CreatesEdge(t *testing.T) {
	follows, users := new(mocks.FollowRepository), new(mocks.UserRepository)
	svc := service.NewFollowService(follows, users)
	ctx := context.Background()

	users.On("FindByUsername", ctx, "leo").Return(&domain.User{ID: 1, Username: "leo"}, nil).Once()
	follows.On("Exists", ctx, uint(2), uint(1)).Return(false, nil).Once()
	follows.On("Create", ctx, &domain.Follow{UserID: 2, AuthorID: 1}).Return(nil).Once()

	author, err := svc.Follow(ctx, 2, "leo")

	require.NoError(t, err)
	assert.Equal(t, "leo", author.Username)
	follows.AssertExpectations(t)
}

func TestFollowService_Follow_Idempotent(t *testing.T) {
	follows, users := new(mocks.FollowRepository), new(mocks.UserRepository)
	svc := service.NewFollowService(follows, users)
	ctx := context.Background()

	users.On("FindByUsername", ctx, "leo").Return(&domain.User{ID: 1}, nil).Once()
	follows.On("Exists", ctx, uint(2), uint(1)).Return(true, nil).Once()

	_, err := svc.Follow(ctx, 2, "leo")

	require.NoError(t, err)
	follows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFollowService_Follow_RaceOnUniqueIndex(t *testing.T) {
	follows, users := new(mocks.FollowRepository), new(mocks.UserRepository)
	svc := service.NewFollowService(follows, users)
	ctx := context.Background()

	users.On("FindByUsername", ctx, "leo").Return(&domain.User{ID: 1}, nil).Once()
	follows.On("Exists", ctx, uint(2), uint(1)).Return(false, nil).Once()
	follows.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateEntry).Once()

	_, err := svc.Follow(ctx, 2, "leo")

	assert.NoError(t, err)
}

func TestFollowService_Follow_SelfIsNoop(t *testing.T) {
	follows, users := new(mocks.FollowRepository), new(mocks.UserRepository)
	svc := service.NewFollowService(follows, users)
	ctx := context.Background()

	users.On("FindByUsername", ctx, "leo").Return(&domain.User{ID: 1}, nil).Once()

	_, err := svc.Follow(ctx, 1, "leo")

	require.NoError(t, err)
	follows.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	follows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFollowService_Follow_UnknownAuthorAndAnonymous(t *testing.T) {
	follows, users := new(mocks.FollowRepository), new(mocks.UserRepository)
	svc := service.NewFollowService(follows, users)
	ctx := context.Background()

	users.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound).Once()

	_, err := svc.Follow(ctx, 2, "ghost")
	assert.ErrorIs(t, err, service.ErrProfileNotFound)

	_, err = svc.Follow(ctx, 0, "leo")
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestFollowService_Unfollow(t *testing.T) {
	follows, users := new(mocks.FollowRepository), new(mocks.UserRepository)
	svc := service.NewFollowService(follows, users)
	ctx := context.Background()

	users.On("FindByUsername", ctx, "leo").Return(&domain.User{ID: 1}, nil).Twice()
	follows.On("Delete", ctx, uint(2), uint(1)).Return(true, nil).Once()
	follows.On("Delete", ctx, uint(2), uint(1)).Return(false, nil).Once()

	_, err := svc.Unfollow(ctx, 2, "leo")
	require.NoError(t, err)
	// 没有关注关系时再次取消也成功
	_, err = svc.Unfollow(ctx, 2, "leo")
	require.NoError(t, err)
	follows.AssertExpectations(t)
}

func TestFollowService_IsFollowing(t *testing.T) {
	follows, users := new(mocks.FollowRepository), new(mocks.UserRepository)
	svc := service.NewFollowService(follows, users)
	ctx := context.Background()

	follows.On("Exists", ctx, uint(2), uint(1)).Return(true, nil).Once()

	ok, err := svc.IsFollowing(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsFollowing(ctx, 0, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
