package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/admitpath/compass/internal/catalog"
	"github.com/admitpath/compass/internal/config"
	"github.com/admitpath/compass/internal/events"
	"github.com/admitpath/compass/internal/store"
)

func NewRouter(c *catalog.Catalog, s store.Store, ev events.Client, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	matches := NewMatchHandler(c, s, ev, cfg)
	admin := NewAdminHandler(s, c)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/match", matches.Score)
		r.Post("/rank", matches.Rank)
		r.Get("/explain/{program_id}", matches.Explain)

		r.Group(func(r chi.Router) {
			r.Use(APIKeyMiddleware(cfg.Server.APIKey))
			r.Get("/stats", admin.Stats)
			r.Post("/catalog/refresh", admin.Refresh)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
