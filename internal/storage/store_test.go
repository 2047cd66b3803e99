package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")
	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestGetMissingKey(t *testing.T) {
	store, _ := openTestStore(t)
	value, ok, err := store.Get(context.Background(), KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSetOverwritesAndPersists(t *testing.T) {
	ctx := context.Background()
	store, path := openTestStore(t)

	require.NoError(t, store.Set(ctx, KeyTheme, "light"))
	require.NoError(t, store.Set(ctx, KeyTheme, "dark"))
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", value)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)

	require.NoError(t, store.Set(ctx, KeySession, "cookie"))
	require.NoError(t, store.Delete(ctx, KeySession))
	require.NoError(t, store.Delete(ctx, KeySession))

	_, ok, err := store.Get(ctx, KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), " ")
	assert.Error(t, err)
}
