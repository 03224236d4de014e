package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ImageStore {
	t.Helper()
	store, err := NewImageStore(context.Background(), t.TempDir(), "http://localhost:8000/imagenes/")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestImageStore_UploadGeneraURLPublica(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Upload(context.Background(), "muzza.JPG", "image/jpeg", []byte("bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8000/imagenes/"), "url: %s", url)
	assert.True(t, strings.HasSuffix(url, ".jpg"), "conserva la extensión normalizada: %s", url)
	assert.NotContains(t, url, "muzza", "el nombre original no viaja en la clave")
}

func TestImageStore_DeleteBorraElArchivo(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(context.Background(), dir, "http://localhost:8000/imagenes")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	url, err := store.Upload(context.Background(), "muzza.jpg", "image/jpeg", []byte("bytes"))
	require.NoError(t, err)

	key := url[strings.LastIndex(url, "/")+1:]
	_, statErr := os.Stat(filepath.Join(dir, key))
	require.NoError(t, statErr, "el archivo debe existir tras Upload")

	require.NoError(t, store.Delete(context.Background(), url))
	_, statErr = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(statErr))
}

func TestImageStore_DeleteRechazaURLAjena(t *testing.T) {
	store := newTestStore(t)

	err := store.Delete(context.Background(), "http://otro-host/imagenes/x.jpg")
	assert.Error(t, err)
}
