// Package storage opens the local SQLite database that backs durable
// client-side state and applies its embedded goose migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/portal/internal/client/migrations"
	"github.com/dmitrijs2005/portal/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// RunMigrations applies all pending migrations from the embedded FS.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Open opens (creating if necessary) the SQLite database at dsn and brings
// its schema up to date. dsn may be a file path or a modernc "file:" URI,
// e.g. "file:portal?mode=memory&cache=shared" in tests.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if !isURI(dsn) {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}

	// SQLite allows a single writer; one connection keeps the profile
	// read-after-write sequence on the same connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dsn, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func isURI(dsn string) bool {
	return strings.HasPrefix(dsn, "file:")
}
