package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yatube/internal/domain"
	"yatube/internal/repository"
	"yatube/internal/repository/mocks"
	"yatube/internal/service"
)

func fakeOpener(groups *mocks.GroupRepository, cache *mocks.FeedCache) envOpener {
	return func(_, _ bool) (*cliEnv, error) {
		env := &cliEnv{groups: service.NewGroupService(groups)}
		if cache != nil {
			env.feeds = service.NewFeedService(
				new(mocks.PostRepository), groups, new(mocks.UserRepository), new(mocks.FollowRepository), cache)
		}
		return env, nil
	}
}

func run(t *testing.T, open envOpener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(open)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGroupCreate(t *testing.T) {
	groups := new(mocks.GroupRepository)
	groups.On("Save", mock.Anything, mock.MatchedBy(func(g *domain.Group) bool {
		return g.Slug == "cats" && g.Title == "Cats"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Group).ID = 3
	}).Return(nil).Once()

	out, err := run(t, fakeOpener(groups, nil), "group", "create", "--title", "Cats", "--slug", "cats")

	require.NoError(t, err)
	assert.Contains(t, out, "created group 3 (cats)")
	groups.AssertExpectations(t)
}

func TestGroupCreate_RequiresSlug(t *testing.T) {
	groups := new(mocks.GroupRepository)

	_, err := run(t, fakeOpener(groups, nil), "group", "create", "--title", "Cats")

	assert.Error(t, err)
	groups.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGroupCreate_SlugTaken(t *testing.T) {
	groups := new(mocks.GroupRepository)
	groups.On("Save", mock.Anything, mock.Anything).Return(repository.ErrDuplicateEntry).Once()

	_, err := run(t, fakeOpener(groups, nil), "group", "create", "--title", "Cats", "--slug", "cats")

	assert.ErrorIs(t, err, service.ErrGroupSlugTaken)
}

func TestGroupList(t *testing.T) {
	groups := new(mocks.GroupRepository)
	groups.On("List", mock.Anything).Return([]domain.Group{
		{ID: 1, Slug: "cats", Title: "Cats"},
		{ID: 2, Slug: "dogs", Title: "Dogs"},
	}, nil).Once()

	out, err := run(t, fakeOpener(groups, nil), "group", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "cats")
	assert.Contains(t, out, "Dogs")
}

func TestCacheClear(t *testing.T) {
	cache := new(mocks.FeedCache)
	cache.On("Clear", mock.Anything).Return(nil).Once()

	out, err := run(t, fakeOpener(new(mocks.GroupRepository), cache), "cache", "clear")

	require.NoError(t, err)
	assert.Contains(t, out, "feed cache cleared")
	cache.AssertExpectations(t)
}
