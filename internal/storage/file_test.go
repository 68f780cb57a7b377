package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ReadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "db.json"))

	_, err := store.Read(context.Background())
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestFileStore_WriteCreatesDirsAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "db.json")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, []byte(`{"v":1}`)))
	require.NoError(t, store.Write(ctx, []byte(`{"v":2}`)))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestMemoryStore_CopiesData(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Read(ctx)
	assert.ErrorIs(t, err, ErrNotExist)

	buf := []byte("abc")
	require.NoError(t, store.Write(ctx, buf))
	buf[0] = 'z'

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
