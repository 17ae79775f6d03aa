// Package core defines the shared language of the bstree system.
//
// This package contains:
//   - Domain entities (Node, HistoryEntry)
//   - Service interfaces (HistoryStore)
//   - Error types shared by the parser, serializer and stores
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
