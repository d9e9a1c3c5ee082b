package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface checks for both backends.
var (
	_ storage.Storage = (*storage.LocalStorage)(nil)
	_ storage.Storage = (*storage.AzureBlobStorage)(nil)
)

func TestLocalStorage_UploadDownloadDelete(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	projectID := uuid.New().String()
	path, size, err := store.Upload(context.Background(), projectID, "rohbau.jpg", "image/jpeg", strings.NewReader("image content"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("image content")), size)
	assert.True(t, strings.HasPrefix(path, projectID+string(filepath.Separator)))
	assert.Equal(t, ".jpg", filepath.Ext(path))

	reader, err := store.Download(context.Background(), path)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "image content", string(data))

	require.NoError(t, store.Delete(context.Background(), path))

	_, err = store.Download(context.Background(), path)
	assert.Error(t, err)
}

func TestLocalStorage_DeleteIsIdempotent(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "missing/file.jpg"))
}

func TestLocalStorage_UploadKeepsFilesApart(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	projectID := uuid.New().String()
	first, _, err := store.Upload(context.Background(), projectID, "foto.jpg", "image/jpeg", strings.NewReader("a"))
	require.NoError(t, err)
	second, _, err := store.Upload(context.Background(), projectID, "foto.jpg", "image/jpeg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewLocalStorage_CreatesBasePath(t *testing.T) {
	base := filepath.Join(t.TempDir(), "photos")
	_, err := storage.NewLocalStorage(base)
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
