// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bstree/internal/service"
	"github.com/leapstack-labs/bstree/internal/state"
	"github.com/leapstack-labs/bstree/internal/testutil"
	"github.com/leapstack-labs/bstree/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Store        state.Store
	Service      *service.Service
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

// SetupTestFixture creates an in-memory SQLite store, a service that
// broadcasts on the fixture's notifier, and a cookie session store.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	store, err := state.Open(state.Config{
		Driver:      state.DriverSQLite,
		Path:        ":memory:",
		AutoMigrate: true,
		Logger:      logger,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	notify := notifier.New()

	return &TestFixture{
		Store:        store,
		Service:      service.New(store, logger, service.WithNotifier(notify)),
		Notifier:     notify,
		SessionStore: NewTestSessionStore(),
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
