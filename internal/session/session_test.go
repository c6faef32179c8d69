package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"file": func(t *testing.T) Store { return NewFileStore(t.TempDir()) },
		"redis": func(t *testing.T) Store {
			store, _ := newRedisStore(t)
			return store
		},
	}

	for name, build := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := build(t)

			_, err := store.Token(ctx)
			assert.ErrorIs(t, err, ErrNoToken)

			ok, err := HasSession(ctx, store)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.SaveToken(ctx, "abc123"))
			token, err := store.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "abc123", token)

			ok, err = HasSession(ctx, store)
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, store.SaveToken(ctx, "def456"))
			token, _ = store.Token(ctx)
			assert.Equal(t, "def456", token)

			require.NoError(t, store.Clear(ctx))
			_, err = store.Token(ctx)
			assert.ErrorIs(t, err, ErrNoToken)
		})
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, NewFileStore(dir).SaveToken(ctx, "abc123"))

	token, err := NewFileStore(dir).Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	info, err := os.Stat(filepath.Join(dir, "foodhub.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foodhub.json"), []byte("{not json"), 0o600))

	store := NewFileStore(dir)
	_, err := store.Token(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.SaveToken(ctx, "abc123"))
	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestRedisStore_NoExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.SaveToken(ctx, "abc123"))
	assert.Zero(t, mr.TTL("foodhub:token"))

	got, err := mr.Get("foodhub:token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)
}
