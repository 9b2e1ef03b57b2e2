package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/payzap/payzap/internal/adapter/http/handler"
	"github.com/payzap/payzap/internal/adapter/http/middleware"
	"github.com/payzap/payzap/internal/infrastructure/auth"
	"github.com/payzap/payzap/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	AuthHandler      *handler.AuthHandler
	TransferHandler  *handler.TransferHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Public endpoints
		r.Post("/users", cfg.AccountHandler.Register)
		r.Get("/users", cfg.AccountHandler.List)
		r.Post("/login", cfg.AuthHandler.Login)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTManager))

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.Get("/{id}/transfers", cfg.TransferHandler.ListByAccount)
			})

			r.Route("/transfers", func(r chi.Router) {
				r.Post("/", cfg.TransferHandler.Create)
				r.Get("/{id}", cfg.TransferHandler.Get)
			})
		})
	})

	return r
}
