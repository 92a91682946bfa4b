package memorystate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/repository"
)

func TestFeedCache_SetGetClear(t *testing.T) {
	ctx := context.Background()
	cache := NewFeedCache(16, time.Minute)

	_, err := cache.Get(ctx, "index:page=1")
	assert.ErrorIs(t, err, repository.ErrCacheMiss)

	payload := []byte(`{"posts":[]}`)
	require.NoError(t, cache.Set(ctx, "index:page=1", payload))
	payload[0] = 'X' // 修改原切片不应影响缓存

	got, err := cache.Get(ctx, "index:page=1")
	require.NoError(t, err)
	assert.Equal(t, `{"posts":[]}`, string(got))

	require.NoError(t, cache.Clear(ctx))
	_, err = cache.Get(ctx, "index:page=1")
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
}

func TestFeedCache_Expires(t *testing.T) {
	ctx := context.Background()
	cache := NewFeedCache(16, 50*time.Millisecond)
	require.NoError(t, cache.Set(ctx, "k", []byte("v")))

	assert.Eventually(t, func() bool {
		_, err := cache.Get(ctx, "k")
		return err != nil
	}, time.Second, 20*time.Millisecond)
}
