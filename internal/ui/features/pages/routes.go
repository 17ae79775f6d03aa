// Package pages serves the two HTML pages of the UI.
package pages

import (
	"io/fs"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures routes for the pages feature.
func SetupRoutes(router chi.Router, assets fs.FS, isDev bool) error {
	handlers := NewHandlers(assets, isDev)

	router.Get("/", handlers.Root)
	router.Get("/enter-numbers", handlers.EnterNumbers)
	router.Get("/previous-trees", handlers.PreviousTrees)

	return nil
}
