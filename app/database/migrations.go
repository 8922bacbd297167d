package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Schema for the SQLite key/value backend. Every archive record lives as one
// JSON row in kv_entries, so the schema only changes when that table does.
//
//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrationsTable tracks the applied kv_entries schema version.
const MigrationsTable = "kv_schema_migrations"

// RunMigrations brings the kv_entries schema up to date and reports the
// resulting version. A database left dirty by an interrupted migration is
// refused with migrate.ErrDirty rather than migrated further.
func RunMigrations(db *DB) (uint, bool, error) {
	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		return 0, false, fmt.Errorf("failed to create sqlite migration driver: %w", err)
	}

	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return 0, false, fmt.Errorf("failed to read embedded kv schema: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, false, fmt.Errorf("failed to migrate kv_entries schema in %s: %w", db.path, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read kv schema version: %w", err)
	}

	db.schemaVersion = version
	return version, dirty, nil
}
