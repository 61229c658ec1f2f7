package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	sqlitedb "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Migrations only ever add tables, columns and indexes, so running them
// against a database created by an older release is safe.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate applies pending schema migrations for the backend.
// It is safe to call on every startup.
func Migrate(db *sql.DB, backend Backend, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations/"+backend.Dialect().String())
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	var driver database.Driver
	switch backend {
	case Networked:
		driver, err = postgresdb.WithInstance(db, &postgresdb.Config{})
	default:
		driver, err = sqlitedb.WithInstance(db, &sqlitedb.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// The instance is not closed: closing it would close db as well.
	m, err := migrate.NewWithInstance("iofs", source, backend.Dialect().String(), driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply", zap.Stringer("backend", backend))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully", zap.Stringer("backend", backend))
	return nil
}
