package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T, namespace string) (*RedisKV, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	kv, err := OpenRedis(context.Background(), &redis.Options{Addr: mr.Addr()}, namespace)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv, mr
}

func TestRedisKVContract(t *testing.T) {
	kv, _ := setupRedis(t, "contract")
	exerciseKV(t, kv)
}

func TestRedisKVNamespacesKeys(t *testing.T) {
	kv, mr := setupRedis(t, "alpha")
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, ThemeKey, []byte("light")))
	stored, err := mr.Get("taskflow:alpha:theme")
	require.NoError(t, err)
	assert.Equal(t, "light", stored)

	other, err := NewRedisKV(&redis.Options{Addr: mr.Addr()}, "beta")
	require.NoError(t, err)
	defer other.Close()
	_, err = other.Get(ctx, ThemeKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisKVRequiresNamespace(t *testing.T) {
	_, err := NewRedisKV(&redis.Options{Addr: "localhost:0"}, "")
	assert.Error(t, err)
}

func TestOpenRedisFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	addr := mr.Addr()
	mr.Close()

	_, err := Open(context.Background(), Options{Backend: BackendRedis, RedisAddr: addr})
	assert.Error(t, err)
}
