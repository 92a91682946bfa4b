// Package localstorage 把帖子图片保存在本地磁盘的 media 目录下。
package localstorage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"yatube/internal/repository"
)

// ImageDir 是图片在 media 根目录下的子目录
const ImageDir = "posts"

// ImageStorage 是 ImageStorage 接口的本地文件实现
type ImageStorage struct {
	root string // media 根目录
}

// NewImageStorage 创建 ImageStorage，并确保 <root>/posts 存在
func NewImageStorage(root string) (*ImageStorage, error) {
	if root == "" {
		return nil, fmt.Errorf("media root cannot be empty")
	}
	if err := os.MkdirAll(filepath.Join(root, ImageDir), 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create image dir under %s: %w", root, err)
	}
	return &ImageStorage{root: root}, nil
}

// Root 返回 media 根目录
func (s *ImageStorage) Root() string { return s.root }

// Save 写入 <root>/posts/<name>，返回 posts/<name>
func (s *ImageStorage) Save(_ context.Context, name string, data []byte) (string, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("storage: invalid image name %q", name)
	}
	rel := path.Join(ImageDir, name)
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	// 先写临时文件再改名，读者不会看到写了一半的图片
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("storage: failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: failed to write image %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: failed to close image %s: %w", rel, err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: failed to move image into %s: %w", rel, err)
	}
	return rel, nil
}

// Delete 删除图片，文件不存在时视为成功
func (s *ImageStorage) Delete(_ context.Context, rel string) error {
	full, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: failed to delete image %s: %w", rel, err)
	}
	return nil
}

// List 列出 posts/ 目录下的所有图片
func (s *ImageStorage) List(_ context.Context) ([]repository.StoredImage, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, ImageDir))
	if err != nil {
		return nil, fmt.Errorf("storage: failed to list images: %w", err)
	}
	images := make([]repository.StoredImage, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue // 文件可能刚被删除
		}
		images = append(images, repository.StoredImage{
			Path:    path.Join(ImageDir, entry.Name()),
			ModTime: info.ModTime(),
		})
	}
	return images, nil
}

// resolve 把相对路径转换为磁盘路径，并拒绝 posts/ 之外的路径
func (s *ImageStorage) resolve(rel string) (string, error) {
	clean := path.Clean(rel)
	if path.Dir(clean) != ImageDir {
		return "", fmt.Errorf("storage: image path %q is outside %s/", rel, ImageDir)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
