package gormpersistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/domain"
	gormpersistence "yatube/internal/infra/persistence/gorm"
	"yatube/internal/repository"
)

func TestGormFollowRepository_DuplicateIsRejected(t *testing.T) {
	db := newTestDB(t)
	repo := gormpersistence.NewGormFollowRepository(db)
	ctx := context.Background()
	user, author := createUser(t, db, "reader"), createUser(t, db, "writer")

	require.NoError(t, repo.Create(ctx, &domain.Follow{UserID: user.ID, AuthorID: author.ID}))
	err := repo.Create(ctx, &domain.Follow{UserID: user.ID, AuthorID: author.ID})
	assert.ErrorIs(t, err, repository.ErrDuplicateEntry)

	followers, err := repo.CountFollowers(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, followers, "重复关注不重复计数")
	following, err := repo.CountFollowing(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, following)
}

func TestGormFollowRepository_SelfFollowViolatesCheck(t *testing.T) {
	db := newTestDB(t)
	repo := gormpersistence.NewGormFollowRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "narcissus")

	err := repo.Create(ctx, &domain.Follow{UserID: user.ID, AuthorID: user.ID})
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrDuplicateEntry)

	exists, err := repo.Exists(ctx, user.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormFollowRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := gormpersistence.NewGormFollowRepository(db)
	ctx := context.Background()
	a, b, author := createUser(t, db, "a"), createUser(t, db, "b"), createUser(t, db, "author")

	require.NoError(t, repo.Create(ctx, &domain.Follow{UserID: a.ID, AuthorID: author.ID}))
	require.NoError(t, repo.Create(ctx, &domain.Follow{UserID: b.ID, AuthorID: author.ID}))

	ids, err := repo.ListFollowerIDs(ctx, author.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, ids)

	exists, err := repo.Exists(ctx, a.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.Exists(ctx, author.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, exists, "关注关系是有向的")

	deleted, err := repo.Delete(ctx, a.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, a.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "不存在的关注删除是空操作")

	followers, err := repo.CountFollowers(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, followers)
}
