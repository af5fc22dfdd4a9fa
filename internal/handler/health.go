package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"chatbackend/internal/httputil"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers liveness and status checks
type HealthHandler struct {
	store  Pinger
	driver string
	logger *slog.Logger
}

// NewHealthHandler creates a health handler for the named store driver
func NewHealthHandler(store Pinger, driver string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{store: store, driver: driver, logger: logger}
}

// Root confirms the API is up
// GET /api/
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "ChatGPT Clone API is running!"})
}

// Health pings the store
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", "store", h.driver, "error", err)
		httputil.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"store":  h.driver,
		})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok", "store": h.driver})
}
