package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	dbschema "github.com/dugout-cli/dugout/db"
	"github.com/dugout-cli/dugout/internal/platform/logging"
)

// SchemaMigrator runs the embedded migrations against the stats database.
type SchemaMigrator struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func newSchemaMigrator(db *sqlx.DB, logger *logging.Logger) *SchemaMigrator {
	if logger == nil {
		logger = logging.Default()
	}
	return &SchemaMigrator{db: db, logger: logger}
}

func (m *SchemaMigrator) Up(ctx context.Context) error {
	inst, err := m.instance()
	if err != nil {
		return err
	}

	if err := inst.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("schema already current")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func (m *SchemaMigrator) Down(ctx context.Context) error {
	inst, err := m.instance()
	if err != nil {
		return err
	}

	if err := inst.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("schema already empty")
			return nil
		}
		return fmt.Errorf("roll back migrations: %w", err)
	}

	return nil
}

// instance builds a fresh migrate handle per run; it shares the app's
// connection, so it is never closed here.
func (m *SchemaMigrator) instance() (*migrate.Migrate, error) {
	source, err := iofs.New(dbschema.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(m.db.DB, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("prepare migration driver: %w", err)
	}

	inst, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return inst, nil
}
