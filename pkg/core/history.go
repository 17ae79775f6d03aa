package core

import (
	"context"
	"time"
)

// MaxInputLength bounds HistoryEntry.InputText, matching the tree_records column.
const MaxInputLength = 2000

// BalancedTag is appended to the input text of entries built in balanced mode.
const BalancedTag = " [balanced]"

// HistoryEntry is one persisted build request and the tree it produced.
// Entries are immutable once created.
type HistoryEntry struct {
	ID             string    `json:"id" yaml:"id"`
	InputText      string    `json:"inputText" yaml:"input_text"`
	SerializedTree string    `json:"serializedTree" yaml:"serialized_tree"`
	Balanced       bool      `json:"balanced" yaml:"balanced"`
	CreatedAt      time.Time `json:"createdAt" yaml:"created_at"`
}

// HistoryStore is an append-only log of past submissions.
type HistoryStore interface {
	// CreateEntry persists entry and assigns its ID. The insert is atomic:
	// either the whole entry is stored or an error is returned.
	CreateEntry(ctx context.Context, entry *HistoryEntry) error

	// ListEntries returns entries newest first (CreatedAt descending, ties by
	// ID ascending). A limit <= 0 returns every entry.
	ListEntries(ctx context.Context, limit int) ([]*HistoryEntry, error)

	// CountEntries returns the number of stored entries.
	CountEntries(ctx context.Context) (int, error)

	// GetEntry returns a single entry or ErrEntryNotFound.
	GetEntry(ctx context.Context, id string) (*HistoryEntry, error)

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error

	Close() error
}
