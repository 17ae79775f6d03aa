package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bstree/internal/testutil"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantErr   bool
		errSubstr string
	}{
		{name: "default driver is sqlite", cfg: Config{Path: ":memory:", AutoMigrate: true}},
		{name: "explicit sqlite", cfg: Config{Driver: "SQLite", Path: ":memory:", AutoMigrate: true}},
		{name: "unknown driver", cfg: Config{Driver: "mysql"}, wantErr: true, errSubstr: "unknown store driver"},
		{name: "postgres without dsn", cfg: Config{Driver: "postgres"}, wantErr: true, errSubstr: "dsn is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Logger = testutil.NewTestLogger(t)
			store, err := Open(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
				return
			}
			require.NoError(t, err)
			defer func() { _ = store.Close() }()

			entries, err := store.ListEntries(context.Background(), 0)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestGenerateID_TimeOrdered(t *testing.T) {
	prev, err := generateID()
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		id, err := generateID()
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
}
