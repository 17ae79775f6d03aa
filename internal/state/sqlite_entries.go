package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/bstree/pkg/core"
)

// CreateEntry inserts a new history entry and assigns its ID.
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *core.HistoryEntry) error {
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
	createdAt := entry.CreatedAt.UTC()

	s.logger.Debug("creating history entry", slog.String("id", id), slog.Bool("balanced", entry.Balanced))

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tree_records (id, input_text, tree_json, balanced, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, entry.InputText, entry.SerializedTree, entry.Balanced, createdAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to create history entry: %w", err)
	}

	entry.ID = id
	entry.CreatedAt = createdAt
	return nil
}

// ListEntries retrieves entries newest first.
func (s *SQLiteStore) ListEntries(ctx context.Context, limit int) ([]*core.HistoryEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := `SELECT id, input_text, tree_json, balanced, created_at
		FROM tree_records ORDER BY created_at DESC, id ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*core.HistoryEntry
	for rows.Next() {
		entry, err := scanSQLiteEntry(rows)
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
func (s *SQLiteStore) CountEntries(ctx context.Context) (int, error) {
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
func (s *SQLiteStore) GetEntry(ctx context.Context, id string) (*core.HistoryEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, input_text, tree_json, balanced, created_at FROM tree_records WHERE id = ?`, id)
	entry, err := scanSQLiteEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrEntryNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteEntry(row rowScanner) (*core.HistoryEntry, error) {
	entry := &core.HistoryEntry{}
	var createdAt int64
	if err := row.Scan(&entry.ID, &entry.InputText, &entry.SerializedTree, &entry.Balanced, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan history entry: %w", err)
	}
	entry.CreatedAt = time.Unix(0, createdAt).UTC()
	return entry, nil
}
