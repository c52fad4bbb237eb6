package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userbot/internal/domain/plugin"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func stores(t *testing.T) map[string]plugin.Store {
	client, _ := setupTestRedis(t)
	return map[string]plugin.Store{
		"redis":  NewRedisKVStore(client),
		"memory": NewMemoryKVStore(),
	}
}

func TestKVStore_RoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, "forward.default-target")
			assert.ErrorIs(t, err, plugin.ErrNotFound)

			require.NoError(t, store.Set(ctx, "forward.default-target", "-100123"))
			got, err := store.Get(ctx, "forward.default-target")
			require.NoError(t, err)
			assert.Equal(t, "-100123", got)

			require.NoError(t, store.Delete(ctx, "forward.default-target"))
			_, err = store.Get(ctx, "forward.default-target")
			assert.ErrorIs(t, err, plugin.ErrNotFound)

			assert.NoError(t, store.Delete(ctx, "never-set"))
		})
	}
}

func TestRedisKVStore_KeyPrefixAndNoExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisKVStore(client)

	require.NoError(t, store.Set(context.Background(), "img.apis", "[]"))

	val, err := mr.Get("userbot:kv:img.apis")
	require.NoError(t, err)
	assert.Equal(t, "[]", val)
	assert.Zero(t, mr.TTL("userbot:kv:img.apis"))
}

func TestRedisKVStore_ConnectionError(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisKVStore(client)
	mr.Close()

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, plugin.ErrNotFound)
}

func TestPollingOffsetStore(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKVStore()
	store := NewPollingOffsetStore(kv)

	offset, err := store.GetOffset(ctx)
	require.NoError(t, err)
	assert.Zero(t, offset)

	require.NoError(t, store.SaveOffset(ctx, 812345))
	offset, err = store.GetOffset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(812345), offset)

	require.NoError(t, kv.Set(ctx, pollingOffsetKey, "garbage"))
	_, err = store.GetOffset(ctx)
	assert.Error(t, err)
}
