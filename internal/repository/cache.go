package repository

import "context"

// FeedCache 缓存渲染好的 feed 响应体。
// TTL 由具体实现在构造时确定；写入后在 TTL 内读取返回同一份数据，
// 只有 Clear 会让其提前失效。
type FeedCache interface {
	// Get 返回缓存的数据，未命中时返回 ErrCacheMiss。
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
	// Clear 删除所有 feed 缓存。
	Clear(ctx context.Context) error
}
