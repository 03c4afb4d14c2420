package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileKV keeps one file per key inside a directory. Writes go through a
// temp file and rename so readers never observe a partial value.
type FileKV struct {
	dir string
}

func OpenFileKV(dir string) (*FileKV, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage: file store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key))
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	target := f.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func (f *FileKV) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

func (f *FileKV) Close() error { return nil }
