package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"slices"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp applies every *.up.sql file in name order inside one
// transaction. The statements are idempotent, so repeated runs are safe.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, "up")
}

// MigrateDown applies the *.down.sql files in reverse name order.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, "down")
}

func migrate(ctx context.Context, db *sql.DB, direction string) error {
	names, err := fs.Glob(migrationFiles, "migrations/*."+direction+".sql")
	if err != nil {
		return fmt.Errorf("list %s migrations: %w", direction, err)
	}
	slices.Sort(names)
	if direction == "down" {
		slices.Reverse(names)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()
	for _, name := range names {
		stmt, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return tx.Commit()
}
