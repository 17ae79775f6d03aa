package state

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// migrationDirs maps a goose dialect to its directory in the embedded FS.
var migrationDirs = map[string]string{
	"sqlite3":  "migrations/sqlite",
	"postgres": "migrations/postgres",
}

// configureGoose points goose at the embedded migrations for dialect.
func configureGoose(dialect string) (string, error) {
	dir, ok := migrationDirs[dialect]
	if !ok {
		return "", fmt.Errorf("no migrations for dialect %q", dialect)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("failed to set dialect: %w", err)
	}
	return dir, nil
}

// migrateUp runs all pending migrations for dialect on db.
func migrateUp(db *sql.DB, dialect string) error {
	if db == nil {
		return fmt.Errorf("database not opened")
	}

	dir, err := configureGoose(dialect)
	if err != nil {
		return err
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// migrationVersion returns the applied schema version for dialect on db.
func migrationVersion(db *sql.DB, dialect string) (int64, error) {
	if db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	if _, err := configureGoose(dialect); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(db)
}
