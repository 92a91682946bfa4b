package redisstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"yatube/internal/repository"
)

const clearScanBatch = 100

// RedisFeedCache 是 FeedCache 接口的 Redis 实现，所有条目使用同一个 TTL。
type RedisFeedCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisFeedCache 创建 RedisFeedCache 实例
func NewRedisFeedCache(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisFeedCache {
	if client == nil {
		panic("redis client cannot be nil for RedisFeedCache")
	}
	if keyPrefix == "" {
		keyPrefix = "yt:"
	}
	if ttl <= 0 {
		panic("ttl must be positive for RedisFeedCache")
	}
	return &RedisFeedCache{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// --- Key Generation Helpers ---
func (r *RedisFeedCache) feedKey(key string) string {
	return fmt.Sprintf("%sfeed:%s", r.keyPrefix, key)
}

func (r *RedisFeedCache) feedPattern() string {
	return r.keyPrefix + "feed:*"
}

// Get 读取缓存，未命中返回 repository.ErrCacheMiss
func (r *RedisFeedCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := r.client.Get(ctx, r.feedKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis: failed to get feed cache %s: %w", key, err)
	}
	return payload, nil
}

// Set 写入缓存并设置过期时间
func (r *RedisFeedCache) Set(ctx context.Context, key string, payload []byte) error {
	if err := r.client.Set(ctx, r.feedKey(key), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to set feed cache %s: %w", key, err)
	}
	return nil
}

// Clear 用 SCAN 找出前缀下的所有 feed key 并分批删除。
// 不用 KEYS，避免阻塞 Redis。
func (r *RedisFeedCache) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.feedPattern(), clearScanBatch).Iterator()
	batch := make([]string, 0, clearScanBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		pipe := r.client.Pipeline()
		pipe.Del(ctx, batch...)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("redis: failed to delete feed cache keys: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= clearScanBatch {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis: failed to scan feed cache keys: %w", err)
	}
	return flush()
}
