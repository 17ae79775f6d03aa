// Package service orchestrates parsing, tree construction, serialization and
// persistence of tree build requests.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/leapstack-labs/bstree/pkg/core"
	"github.com/leapstack-labs/bstree/pkg/tree"
)

// Broadcaster is notified after each successfully stored entry.
type Broadcaster interface {
	Broadcast()
}

// Service builds trees and records them in a HistoryStore.
type Service struct {
	store    core.HistoryStore
	logger   *slog.Logger
	now      func() time.Time
	notifier Broadcaster
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNotifier registers a broadcaster pinged after each stored entry.
func WithNotifier(b Broadcaster) Option {
	return func(s *Service) { s.notifier = b }
}

// New creates a Service backed by store.
func New(store core.HistoryStore, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build parses raw and returns the tree without persisting it.
func (s *Service) Build(raw string, balanced bool) (*core.Node, error) {
	t, err := build(raw, balanced)
	if err != nil {
		return nil, err
	}
	return tree.ToSerializable(t.Root), nil
}

func build(raw string, balanced bool) (*tree.Tree, error) {
	values, err := tree.Parse(raw)
	if err != nil {
		return nil, err
	}
	if balanced {
		return tree.BuildBalanced(tree.DistinctSorted(values)), nil
	}
	return tree.BuildInsertionOrder(values), nil
}

// BuildAndStore parses raw, builds the tree in the requested mode, persists a
// history entry and returns the serialized tree. A ParseError is returned
// unchanged; persistence failures are returned as *core.StorageError. Nothing
// is returned as saved unless the entry was stored.
func (s *Service) BuildAndStore(ctx context.Context, raw string, balanced bool) (*core.Node, error) {
	_, serialized, err := s.BuildAndRecord(ctx, raw, balanced)
	if err != nil {
		return nil, err
	}
	return serialized, nil
}

// BuildAndRecord is BuildAndStore but also returns the stored entry. Input
// whose recorded text would exceed core.MaxInputLength is rejected with
// *core.InputTooLongError before anything is built or stored.
func (s *Service) BuildAndRecord(ctx context.Context, raw string, balanced bool) (*core.HistoryEntry, *core.Node, error) {
	input := raw
	if balanced {
		input += core.BalancedTag
	}
	if n := utf8.RuneCountInString(input); n > core.MaxInputLength {
		return nil, nil, &core.InputTooLongError{Length: n, Limit: core.MaxInputLength}
	}

	t, err := build(raw, balanced)
	if err != nil {
		return nil, nil, err
	}

	serialized := tree.ToSerializable(t.Root)
	text, err := tree.Encode(serialized)
	if err != nil {
		return nil, nil, err
	}

	entry := &core.HistoryEntry{
		InputText:      input,
		SerializedTree: text,
		Balanced:       balanced,
		CreatedAt:      s.now(),
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, nil, asStorageError("create entry", err)
	}

	s.logger.Info("stored tree",
		slog.String("id", entry.ID),
		slog.Bool("balanced", balanced),
		slog.Int("nodes", tree.Size(t.Root)),
		slog.Int("height", tree.Height(t.Root)))

	if s.notifier != nil {
		s.notifier.Broadcast()
	}
	return entry, serialized, nil
}

// ListHistory returns all entries, most recent first.
func (s *Service) ListHistory(ctx context.Context) ([]*core.HistoryEntry, error) {
	return s.ListRecent(ctx, 0)
}

// ListRecent returns up to limit entries, most recent first. A limit <= 0
// returns every entry.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*core.HistoryEntry, error) {
	entries, err := s.store.ListEntries(ctx, limit)
	if err != nil {
		return nil, asStorageError("list entries", err)
	}
	if entries == nil {
		entries = []*core.HistoryEntry{}
	}
	return entries, nil
}

// CountHistory returns the number of stored entries.
func (s *Service) CountHistory(ctx context.Context) (int, error) {
	n, err := s.store.CountEntries(ctx)
	if err != nil {
		return 0, asStorageError("count entries", err)
	}
	return n, nil
}

// GetEntry returns one stored entry. Unknown IDs yield core.ErrEntryNotFound.
func (s *Service) GetEntry(ctx context.Context, id string) (*core.HistoryEntry, error) {
	entry, err := s.store.GetEntry(ctx, id)
	if errors.Is(err, core.ErrEntryNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, asStorageError("get entry", err)
	}
	return entry, nil
}

// DecodeEntry returns the tree stored in entry.
func DecodeEntry(entry *core.HistoryEntry) (*core.Node, error) {
	if entry == nil {
		return nil, fmt.Errorf("entry is nil")
	}
	return tree.Decode(entry.SerializedTree)
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return asStorageError("ping", err)
	}
	return nil
}

func asStorageError(op string, err error) error {
	var serr *core.StorageError
	if errors.As(err, &serr) {
		return err
	}
	return &core.StorageError{Op: op, Err: err}
}
