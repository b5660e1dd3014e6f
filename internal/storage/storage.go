// Package storage wires the two persistent namespaces: the SQLite-backed
// preference store (schema managed by embedded goose migrations) and the
// sealed file-backed secret store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daybookapp/daybook/internal/storage/migrations"
	"github.com/daybookapp/daybook/internal/storage/prefs"
	"github.com/daybookapp/daybook/internal/storage/secret"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const prefsDBName = "daybook.db"

// Stores groups the opened persistence handles. The two namespaces are
// disjoint: credentials never touch Prefs, entries never touch Secrets.
type Stores struct {
	DB      *sql.DB
	Prefs   prefs.Repository
	Secrets secret.Store
}

// RunMigrations applies the embedded preference-store migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open creates dataDir if needed, opens the preference database, applies
// migrations, and constructs both stores.
func Open(ctx context.Context, dataDir string) (*Stores, error) {
	if err := os.MkdirAll(dataDir, 0o770); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, prefsDBName))
	if err != nil {
		return nil, fmt.Errorf("failed to open preference db: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate preference db: %w", err)
	}

	return &Stores{
		DB:      db,
		Prefs:   prefs.NewSQLiteRepository(db),
		Secrets: secret.NewFileStore(dataDir),
	}, nil
}

// Close releases the underlying database handle.
func (s *Stores) Close() error {
	return s.DB.Close()
}
