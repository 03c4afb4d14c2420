package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"
)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendRedis, BackendFile, BackendMemory:
		return true
	default:
		return false
	}
}

type Options struct {
	Backend        Backend
	DataDir        string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisNamespace string
}

// Open builds the KV backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		if err := ensureDir(opts.DataDir); err != nil {
			return nil, err
		}
		return OpenSQLite(ctx, filepath.Join(opts.DataDir, "taskflow.db"))
	case BackendFile:
		return OpenFileKV(filepath.Join(opts.DataDir, "kv"))
	case BackendRedis:
		ns := opts.RedisNamespace
		if ns == "" {
			ns = "default"
		}
		return OpenRedis(ctx, &redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		}, ns)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}

func ensureDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("storage: data dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
