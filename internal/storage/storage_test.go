package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "theme")
	require.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	require.NoError(t, kv.Set(ctx, "theme", "dark"))
	require.NoError(t, kv.Set(ctx, "app-preferences", `{"autoAnalyze":false}`))
	require.NoError(t, kv.Set(ctx, "theme", "light"))

	v, err := kv.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", v)

	v, err = kv.Get(ctx, "app-preferences")
	require.NoError(t, err)
	assert.JSONEq(t, `{"autoAnalyze":false}`, v)
}

func TestMemoryStore(t *testing.T) {
	exerciseKV(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	exerciseKV(t, NewFileStore(path))

	// a second store on the same path sees the persisted values
	v, err := NewFileStore(path).Get(context.Background(), "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Get(context.Background(), "theme")
	assert.ErrorContains(t, err, "decode state file")
}
