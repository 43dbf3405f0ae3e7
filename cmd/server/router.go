package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vedasmart/deck-api/internal/api"
	apiMiddleware "github.com/vedasmart/deck-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	deckHandler := api.NewDeckHandler(app.deckService, app.exporter, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/decks", deckHandler.CreateDeck)
		r.Get("/decks/{id}", deckHandler.GetDeck)
		r.Get("/decks/{id}/export", deckHandler.ExportDeck)
		r.Post("/decks/{id}/navigate", deckHandler.Navigate)
		r.Post("/decks/{id}/answers", deckHandler.Answer)
		r.Delete("/decks/{id}", deckHandler.DeleteDeck)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
