package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores values as plain Redis strings under
// taskflow:<namespace>:<key>.
type RedisKV struct {
	rdb       *redis.Client
	namespace string
}

func NewRedisKV(opts *redis.Options, namespace string) (*RedisKV, error) {
	if namespace == "" {
		return nil, errors.New("storage: redis namespace cannot be empty")
	}
	return &RedisKV{rdb: redis.NewClient(opts), namespace: namespace}, nil
}

// OpenRedis connects and verifies the server is reachable.
func OpenRedis(ctx context.Context, opts *redis.Options, namespace string) (*RedisKV, error) {
	kv, err := NewRedisKV(opts, namespace)
	if err != nil {
		return nil, err
	}
	if err := kv.Ping(ctx); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return kv, nil
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisKV) Close() error {
	return r.rdb.Close()
}

func (r *RedisKV) Key(key string) string {
	return fmt.Sprintf("taskflow:%s:%s", r.namespace, key)
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.rdb.Get(ctx, r.Key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, r.Key(key), value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	n, err := r.rdb.Del(ctx, r.Key(key)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
