// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves /healthz.
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler that pings db on GET and HEAD.
// A nil db reports healthy without checking anything.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// Health handles the /healthz endpoint.
// It responds per HTTP method and prevents caching.
func (h *HealthHandler) Health(c *gin.Context) {
	// Explicitly prevent caching
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	healthy := h.ping(c.Request.Context())

	switch {
	case c.Request.Method == http.MethodHead && healthy:
		c.Status(http.StatusOK)
	case c.Request.Method == http.MethodHead:
		c.Status(http.StatusServiceUnavailable)
	case healthy:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
	}
}

func (h *HealthHandler) ping(ctx context.Context) bool {
	if h.db == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		slog.Error("health check: database ping failed", "error", err)
		return false
	}
	return true
}
