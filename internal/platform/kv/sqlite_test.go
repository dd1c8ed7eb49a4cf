package kv_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusfence/internal/platform/kv"
	"focusfence/internal/platform/tx"
)

var _ tx.Manager = (*kv.SQLiteStore)(nil)

func openStore(t *testing.T) *kv.SQLiteStore {
	t.Helper()
	store, err := kv.Open(filepath.Join(t.TempDir(), "data", "focusfence.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	_, ok, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "theme", `"dark"`))
	require.NoError(t, store.Set(ctx, "theme", `"light"`))
	value, ok, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"light"`, value)

	require.NoError(t, store.Delete(ctx, "theme"))
	_, ok, err = store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithinRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	boom := errors.New("boom")

	err := store.Within(ctx, func(ctx context.Context) error {
		require.NoError(t, store.Set(ctx, "a", "1"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	_, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Within(ctx, func(ctx context.Context) error {
		if err := store.Set(ctx, "a", "1"); err != nil {
			return err
		}
		return store.Set(ctx, "b", "2")
	}))
	value, ok, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", value)
}
