// Package state provides persistence for tree history using SQLite or Postgres.
// Both backends implement core.HistoryStore and share one embedded migration
// history per dialect.
package state

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/leapstack-labs/bstree/pkg/core"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store is a HistoryStore backed by database/sql with schema management.
type Store interface {
	core.HistoryStore

	// Migrate applies all pending migrations.
	Migrate() error

	// MigrationVersion returns the current schema version.
	MigrationVersion() (int64, error)

	// DB exposes the underlying connection pool.
	DB() *sql.DB
}

// Config selects and locates a history database.
type Config struct {
	Driver string // sqlite (default) or postgres
	Path   string // sqlite file path or ":memory:"
	DSN    string // postgres connection string

	// AutoMigrate runs migrations right after the connection is opened.
	AutoMigrate bool

	Logger *slog.Logger
}

// Open connects to the database described by cfg.
func Open(cfg Config) (Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var store Store
	switch strings.ToLower(cfg.Driver) {
	case "", DriverSQLite:
		s := NewSQLiteStore(logger)
		if err := s.Open(cfg.Path); err != nil {
			return nil, err
		}
		store = s
	case DriverPostgres:
		s := NewPostgresStore(logger)
		if err := s.Open(cfg.DSN); err != nil {
			return nil, err
		}
		store = s
	default:
		return nil, fmt.Errorf("unknown store driver %q (want %s or %s)", cfg.Driver, DriverSQLite, DriverPostgres)
	}

	if cfg.AutoMigrate {
		if err := store.Migrate(); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return store, nil
}

// generateID creates a time-ordered UUIDv7 so that IDs sort in creation order.
func generateID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate entry id: %w", err)
	}
	return id.String(), nil
}

// validateEntry enforces the column bounds of tree_records.
func validateEntry(entry *core.HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("entry is nil")
	}
	if n := utf8.RuneCountInString(entry.InputText); n > core.MaxInputLength {
		return fmt.Errorf("input text is %d characters, limit is %d", n, core.MaxInputLength)
	}
	if entry.SerializedTree == "" {
		return fmt.Errorf("serialized tree is empty")
	}
	return nil
}
