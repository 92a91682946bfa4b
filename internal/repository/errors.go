package repository

import "errors"

// 通用的存储库错误
var (
	// ErrNotFound 表示请求的记录未找到 (缓存未命中也使用它)
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry 表示尝试插入或更新的数据违反了唯一约束
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// 特定资源的错误 (基于通用错误)
var (
	ErrUserNotFound  = ErrNotFound
	ErrGroupNotFound = ErrNotFound
	ErrPostNotFound  = ErrNotFound
	ErrCacheMiss     = ErrNotFound
)
