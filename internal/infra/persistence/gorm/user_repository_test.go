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

func TestGormUserRepository_UniqueUsername(t *testing.T) {
	db := newTestDB(t)
	repo := gormpersistence.NewGormUserRepository(db)
	ctx := context.Background()
	leo := createUser(t, db, "leo")

	err := repo.Save(ctx, &domain.User{Username: "leo", Password: "other"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEntry)

	found, err := repo.FindByUsername(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, leo.ID, found.ID)

	_, err = repo.FindByID(ctx, leo.ID+100)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestGormGroupRepository_SlugAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := gormpersistence.NewGormGroupRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Group{Title: "Zebras", Slug: "zebras"}))
	require.NoError(t, repo.Save(ctx, &domain.Group{Title: "Cats", Slug: "cats"}))
	assert.ErrorIs(t, repo.Save(ctx, &domain.Group{Title: "Cats again", Slug: "cats"}), repository.ErrDuplicateEntry)

	groups, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Cats", groups[0].Title, "按标题排序")

	found, err := repo.FindBySlug(ctx, "zebras")
	require.NoError(t, err)
	assert.Equal(t, "Zebras", found.Title)

	_, err = repo.FindBySlug(ctx, "dogs")
	assert.ErrorIs(t, err, repository.ErrGroupNotFound)
}
