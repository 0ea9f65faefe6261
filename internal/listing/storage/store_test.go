package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSaveAndURL(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8081/photos/")
	require.NoError(t, err)

	path := PhotoPath(3, "abc-123", "front.jpg")
	saved, err := store.Save(path, strings.NewReader("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, path, saved)

	assert.Equal(t, "http://localhost:8081/photos/listings/3/abc-123/front.jpg", store.URL(saved))
}

func TestDiskStoreDeleteMissingIsNoOp(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8081/photos")
	require.NoError(t, err)

	assert.NoError(t, store.Delete("listings/1/never/was.jpg"))
}

func TestDiskStoreDeleteRemovesBlob(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root, "http://localhost:8081/photos")
	require.NoError(t, err)

	path := PhotoPath(1, "abc", "a.jpg")
	_, err = store.Save(path, strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(path))
	_, statErr := os.Stat(filepath.Join(root, filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDiskStoreRejectsTraversal(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8081/photos")
	require.NoError(t, err)

	_, err = store.Save("../outside.jpg", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestPhotoPathStripsDirectories(t *testing.T) {
	assert.Equal(t, "listings/2/abc/evil.jpg", PhotoPath(2, "abc", "../../evil.jpg"))
}
