// Package api exposes the article source queries and the composed homepage over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Newsdesk/internal/feed"
	"Newsdesk/internal/ports"
)

// HomepageBuilder composes one homepage per call.
type HomepageBuilder interface {
	Build(ctx context.Context) feed.Homepage
}

// Handler serves the read API.
type Handler struct {
	source   ports.ArticleSource
	homepage HomepageBuilder
	logger   *slog.Logger
}

// NewHandler wires the article source and the homepage use case.
func NewHandler(source ports.ArticleSource, homepage HomepageBuilder, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{source: source, homepage: homepage, logger: logger}
}

// Routes builds the chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(instrument)

		r.Get("/homepage", h.Homepage)

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", h.ListPublished)
			r.Get("/editor-picks", h.ListEditorPicks)
			r.Get("/top-highlights", h.ListTopHighlights)
			r.Get("/by-category", h.ListCategoryGrouped)
		})
	})

	return r
}
