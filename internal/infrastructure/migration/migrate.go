package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator wraps golang-migrate with logging. It reads .up.sql/.down.sql
// pairs from a directory and applies them against Postgres.
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New builds a Migrator over an open database handle.
func New(db *sql.DB, migrationsPath string, log *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}

	return &Migrator{m: m, log: log}, nil
}

// Up applies every pending migration.
func (mg *Migrator) Up() error {
	mg.log.Info("Applying pending migrations")

	err := mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	mg.logVersion("Migrations applied")
	return nil
}

// Down rolls back every applied migration.
func (mg *Migrator) Down() error {
	mg.log.Info("Rolling back all migrations")

	err := mg.m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("Nothing to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	mg.log.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations; negative n rolls back.
func (mg *Migrator) Steps(n int) error {
	mg.log.Info("Applying migration steps", zap.Int("steps", n))

	err := mg.m.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate steps: %w", err)
	}
	mg.logVersion("Migration steps applied")
	return nil
}

// GoTo migrates up or down to the named version.
func (mg *Migrator) GoTo(version uint) error {
	mg.log.Info("Migrating to version", zap.Uint("target", version))

	err := mg.m.Migrate(version)
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("Already at target version")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate to version %d: %w", version, err)
	}
	mg.logVersion("Migration completed")
	return nil
}

// Version reports the current schema version. A fresh database reports
// version 0 and no error.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any SQL. Only for
// recovering a dirty schema_migrations row.
func (mg *Migrator) Force(version int) error {
	mg.log.Warn("Forcing migration version", zap.Int("version", version))

	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the database.
func (mg *Migrator) Drop() error {
	mg.log.Warn("Dropping all database objects")

	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

// Close releases the source and database handles.
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

func (mg *Migrator) logVersion(msg string) {
	version, dirty, err := mg.m.Version()
	if err != nil {
		return
	}
	mg.log.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
