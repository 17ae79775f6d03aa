package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/leapstack-labs/bstree/pkg/core"
)

// PostgresStore implements Store using PostgreSQL through pgx.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStore creates a new Postgres history store instance.
func NewPostgresStore(logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PostgresStore{logger: logger}
}

// Open connects using a libpq-style or URL DSN.
func (s *PostgresStore) Open(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("postgres dsn is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres database: %w", err)
	}

	s.db = db
	s.logger.Debug("opened postgres history store")
	return nil
}

// OpenDB uses an existing connection pool.
func (s *PostgresStore) OpenDB(db *sql.DB) {
	s.db = db
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping verifies the connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	return s.db.PingContext(ctx)
}

// DB returns the underlying database connection.
func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// Migrate runs all pending database migrations.
func (s *PostgresStore) Migrate() error {
	return migrateUp(s.db, "postgres")
}

// MigrationVersion returns the current migration version.
func (s *PostgresStore) MigrationVersion() (int64, error) {
	return migrationVersion(s.db, "postgres")
}

// CreateEntry inserts a new history entry and assigns its ID.
func (s *PostgresStore) CreateEntry(ctx context.Context, entry *core.HistoryEntry) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if err := validateEntry(entry); err != nil {
		return err
	}

	id, err := generateID()
	if err != nil {
		return err
	}
	// TIMESTAMPTZ keeps microseconds.
	createdAt := entry.CreatedAt.UTC().Truncate(time.Microsecond)

	s.logger.Debug("creating history entry", slog.String("id", id), slog.Bool("balanced", entry.Balanced))

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tree_records (id, input_text, tree_json, balanced, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, entry.InputText, entry.SerializedTree, entry.Balanced, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create history entry: %w", err)
	}

	entry.ID = id
	entry.CreatedAt = createdAt
	return nil
}

// ListEntries retrieves entries newest first.
func (s *PostgresStore) ListEntries(ctx context.Context, limit int) ([]*core.HistoryEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := `SELECT id, input_text, tree_json, balanced, created_at
		FROM tree_records ORDER BY created_at DESC, id ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*core.HistoryEntry
	for rows.Next() {
		entry, err := scanPostgresEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return entries, nil
}

// CountEntries returns the number of stored entries.
func (s *PostgresStore) CountEntries(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tree_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history entries: %w", err)
	}
	return n, nil
}

// GetEntry retrieves an entry by ID.
func (s *PostgresStore) GetEntry(ctx context.Context, id string) (*core.HistoryEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, input_text, tree_json, balanced, created_at FROM tree_records WHERE id = $1`, id)
	entry, err := scanPostgresEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrEntryNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func scanPostgresEntry(row rowScanner) (*core.HistoryEntry, error) {
	entry := &core.HistoryEntry{}
	if err := row.Scan(&entry.ID, &entry.InputText, &entry.SerializedTree, &entry.Balanced, &entry.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan history entry: %w", err)
	}
	entry.CreatedAt = entry.CreatedAt.UTC()
	return entry, nil
}
