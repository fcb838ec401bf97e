// Package api exposes the slash commands over HTTP using chi, so editors
// other than the terminal host can insert daily note links.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.log))

	r.Get("/commands", h.ListCommands)
	r.Post("/slash/{id}", h.InvokeCommand)
	r.Post("/date/{date}", h.InsertDate)

	r.Get("/notebooks", h.ListNotebooks)
	r.Put("/notebooks/selected", h.SelectNotebook)

	return r
}

