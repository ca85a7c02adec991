package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreMissingFileReturnsNil(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "favourites.json"))

	data, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "favourites.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(context.Background(), []byte(`[{"id":7}]`)))

	data, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":7}]`), data)

	// 覆寫取代舊內容
	require.NoError(t, store.Save(context.Background(), []byte(`[]`)))
	data, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
}

func TestFileStoreLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "favourites.json"))

	require.NoError(t, store.Save(context.Background(), []byte(`[]`)))

	_, err := os.Stat(filepath.Join(dir, "favourites.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	data, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.Save(context.Background(), []byte("payload")))

	data, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	// 返回的是副本，改動不影響內部狀態
	data[0] = 'X'
	fresh, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), fresh)
}
