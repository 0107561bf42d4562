package postgres

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // database/sql driver used by the migrator

	"github.com/kailas-cloud/unisearch/internal/db"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending embedded migrations to the database at dsn.
func Migrate(dsn string) error {
	m, closeFn, err := newMigrator(dsn)
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}
	defer closeFn()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("apply: %w", err)}
	}
	return nil
}

// MigrationVersion reports the applied schema version and whether the last
// migration left the schema dirty. Version 0 means nothing is applied.
func MigrationVersion(dsn string) (uint, bool, error) {
	m, closeFn, err := newMigrator(dsn)
	if err != nil {
		return 0, false, &db.Error{Op: db.OpMigrate, Err: err}
	}
	defer closeFn()

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, &db.Error{Op: db.OpMigrate, Err: err}
	}
	return v, dirty, nil
}

func newMigrator(dsn string) (*migrate.Migrate, func(), error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, nil, fmt.Errorf("open migration source: %w", err)
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open migration connection: %w", err)
	}

	driver, err := migratepg.WithInstance(conn, &migratepg.Config{})
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, func() { _, _ = m.Close() }, nil
}
