package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteKV struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteKV(db *sql.DB) (*SQLiteKV, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return &SQLiteKV{db: db, now: time.Now}, nil
}

// OpenSQLite opens the database at path and applies migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	kv, err := NewSQLiteKV(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC().Format(sqliteTimeLayout),
	)
	return err
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
