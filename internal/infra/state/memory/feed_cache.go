// Package memorystate 提供进程内的缓存实现，用于单实例部署和测试。
package memorystate

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"yatube/internal/repository"
)

// DefaultSize 是内存 feed 缓存最多保存的页数
const DefaultSize = 1024

// FeedCache 是 FeedCache 接口的内存实现
type FeedCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewFeedCache 创建容量为 size、过期时间为 ttl 的内存缓存
func NewFeedCache(size int, ttl time.Duration) *FeedCache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		panic("ttl must be positive for memory FeedCache")
	}
	return &FeedCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get 读取缓存，未命中返回 repository.ErrCacheMiss
func (c *FeedCache) Get(_ context.Context, key string) ([]byte, error) {
	payload, ok := c.lru.Get(key)
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return payload, nil
}

// Set 写入缓存。保存副本，调用方之后修改切片不影响缓存内容。
func (c *FeedCache) Set(_ context.Context, key string, payload []byte) error {
	c.lru.Add(key, append([]byte(nil), payload...))
	return nil
}

// Clear 清空所有条目
func (c *FeedCache) Clear(_ context.Context) error {
	c.lru.Purge()
	return nil
}
