// Package router sets up HTTP routes for the UI server.
package router

import (
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/bstree/internal/service"
	pagesFeature "github.com/leapstack-labs/bstree/internal/ui/features/pages"
	treesFeature "github.com/leapstack-labs/bstree/internal/ui/features/trees"
	"github.com/leapstack-labs/bstree/internal/ui/notifier"
	"github.com/leapstack-labs/bstree/internal/ui/resources"
	"github.com/starfederation/datastar-go/datastar"
)

// Deps holds everything the routes need.
type Deps struct {
	Service      *service.Service
	SessionStore sessions.Store
	Notifier     *notifier.Notifier
	Logger       *slog.Logger

	// Assets holds the pages and static files; Embedded enables minification
	// and long-lived caching.
	Assets   fs.FS
	Embedded bool

	// Reloader enables the dev reload endpoints when non-nil.
	Reloader *Reloader
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	isDev := deps.Reloader != nil

	// Hot reload endpoint for dev mode
	if isDev {
		setupReload(router, deps.Reloader)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler(deps.Assets, deps.Embedded))

	// Feature routes
	if err := pagesFeature.SetupRoutes(router, deps.Assets, isDev); err != nil {
		return err
	}

	if err := treesFeature.SetupRoutes(router, deps.Service, deps.SessionStore, deps.Notifier, deps.Logger); err != nil {
		return err
	}

	return nil
}

// Reloader asks connected dev pages to reload.
type Reloader struct {
	ch chan struct{}
}

// NewReloader creates a Reloader.
func NewReloader() *Reloader {
	return &Reloader{ch: make(chan struct{}, 1)}
}

// Trigger requests a reload. Pending requests coalesce.
func (r *Reloader) Trigger() {
	select {
	case r.ch <- struct{}{}:
	default:
	}
}

func setupReload(router chi.Router, reloader *Reloader) {
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloader.ch:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		reloader.Trigger()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
