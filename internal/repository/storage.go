package repository

import (
	"context"
	"time"
)

// StoredImage 描述存储中的一个图片文件。
type StoredImage struct {
	Path    string // 相对路径，例如 posts/abc.png
	ModTime time.Time
}

// ImageStorage 定义了帖子图片的文件存储。
type ImageStorage interface {
	// Save 写入图片并返回相对路径 posts/<name>。
	Save(ctx context.Context, name string, data []byte) (string, error)
	// Delete 删除图片，文件不存在时不报错。
	Delete(ctx context.Context, path string) error
	// List 列出 posts/ 下所有图片。
	List(ctx context.Context) ([]StoredImage, error)
}
