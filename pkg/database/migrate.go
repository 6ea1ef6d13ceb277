package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies every pending up migration. It reports whether
// anything changed.
func RunMigrations(databaseURL string) (bool, error) {
	m, closeDB, err := newMigrator(databaseURL)
	if err != nil {
		return false, err
	}
	defer closeDB()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return false, closeMigrator(m)
	}
	if err != nil {
		_ = closeMigrator(m)
		return false, fmt.Errorf("run migrations: %w", err)
	}
	return true, closeMigrator(m)
}

// RollbackMigrations reverts the last steps migrations.
func RollbackMigrations(databaseURL string, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", steps)
	}
	m, closeDB, err := newMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		_ = closeMigrator(m)
		return fmt.Errorf("rollback migrations: %w", err)
	}
	return closeMigrator(m)
}

// MigrationVersion returns the applied version and whether it is dirty.
func MigrationVersion(databaseURL string) (uint, bool, error) {
	m, closeDB, err := newMigrator(databaseURL)
	if err != nil {
		return 0, false, err
	}
	defer closeDB()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, closeMigrator(m)
	}
	if err != nil {
		_ = closeMigrator(m)
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, closeMigrator(m)
}

// newMigrator opens a separate database/sql connection through the pgx
// stdlib driver, so migrations never hold a connection of the main pool.
func newMigrator(databaseURL string) (*migrate.Migrate, func(), error) {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open migration database: %w", err)
	}
	closeDB := func() { _ = migrationDB.Close() }

	if err := migrationDB.Ping(); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("ping migration database: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("create postgres driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, closeDB, nil
}

func closeMigrator(m *migrate.Migrate) error {
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}
	return nil
}
