package store

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"tutordesk/internal/store/migrations"
)

// MigrateResult reports the schema version the cache ended up at and
// whether any migration actually ran.
type MigrateResult struct {
	Version uint
	Dirty   bool
	Changed bool
}

// Migrate brings the cache schema up to date from the embedded migration
// files. Safe to run on every startup; a current schema is a no-op.
func (db *DB) Migrate() (*MigrateResult, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("migration instance: %w", err)
	}

	result := &MigrateResult{Changed: true}
	switch err := m.Up(); err {
	case nil:
	case migrate.ErrNoChange:
		result.Changed = false
	default:
		return nil, fmt.Errorf("migration up: %w", err)
	}

	result.Version, result.Dirty, _ = m.Version()
	return result, nil
}
