package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const readinessTimeout = 5 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	pool        *pgxpool.Pool
	redisClient *redis.Client
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		pool:        pool,
		redisClient: redisClient,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness pings postgres and redis. With either dependency down the
// service cannot settle transfers, so it reports 503 and names the
// failing component.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := map[string]string{
		"status":   "ready",
		"postgres": "ok",
		"redis":    "ok",
	}
	status := http.StatusOK

	if err := h.pool.Ping(ctx); err != nil {
		checks["status"] = "degraded"
		checks["postgres"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		checks["status"] = "degraded"
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, checks)
}
