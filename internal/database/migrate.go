package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrator applies schema migrations from a directory of SQL files.
type Migrator struct {
	m *migrate.Migrate
}

func NewMigrator(databaseURL, migrationsPath string) (*Migrator, error) {
	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up applies all pending migrations. A database that is already current
// is not an error.
func (mi *Migrator) Up() error {
	if err := mi.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Down rolls everything back.
func (mi *Migrator) Down() error {
	if err := mi.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rolling back migrations: %w", err)
	}
	return nil
}

// Version reports the current migration version and whether the database
// is dirty. An unmigrated database returns migrate.ErrNilVersion.
func (mi *Migrator) Version() (uint, bool, error) {
	return mi.m.Version()
}

// Close releases the source and database handles. The source error takes
// precedence when both fail.
func (mi *Migrator) Close() error {
	srcErr, dbErr := mi.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}
