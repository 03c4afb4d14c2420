package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// KV is a flat key-value byte store. Get returns ErrNotFound for
// missing keys; Set overwrites.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
