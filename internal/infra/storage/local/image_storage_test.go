package localstorage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageStorage_SaveListDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	storage, err := NewImageStorage(root)
	require.NoError(t, err)

	rel, err := storage.Save(ctx, "cat.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "posts/cat.png", rel)

	data, err := os.ReadFile(filepath.Join(root, "posts", "cat.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	images, err := storage.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "posts/cat.png", images[0].Path)

	require.NoError(t, storage.Delete(ctx, rel))
	require.NoError(t, storage.Delete(ctx, rel), "deleting a missing file is not an error")

	images, err = storage.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestImageStorage_SaveStripsDirectories(t *testing.T) {
	storage, err := NewImageStorage(t.TempDir())
	require.NoError(t, err)

	rel, err := storage.Save(context.Background(), "../../etc/evil.png", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "posts/evil.png", rel)
}

func TestImageStorage_DeleteRejectsOutsidePaths(t *testing.T) {
	storage, err := NewImageStorage(t.TempDir())
	require.NoError(t, err)

	err = storage.Delete(context.Background(), "../secret.txt")
	assert.Error(t, err)
}
