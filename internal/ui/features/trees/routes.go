// Package trees provides the tree building and history API.
package trees

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/bstree/internal/service"
	"github.com/leapstack-labs/bstree/internal/ui/notifier"
)

// SetupRoutes configures routes for the trees feature.
func SetupRoutes(
	router chi.Router,
	svc *service.Service,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(svc, sessionStore, notify, logger)

	router.Post("/process-numbers", handlers.ProcessNumbers)
	router.Post("/process-numbers-json", handlers.ProcessNumbersJSON)

	router.Route("/api", func(r chi.Router) {
		r.Get("/previous", handlers.ListPrevious)
		r.Get("/previous/events", handlers.PreviousEvents)
		r.Get("/previous/{id}", handlers.GetPrevious)
		r.Get("/last-input", handlers.LastInput)
	})

	router.Get("/healthz", handlers.Health)

	return nil
}
