package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a store the health check pings.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	checks      map[string]Pinger
}

func NewHealthHandler(serviceName, version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		checks:      checks,
	}
}

// HealthCheck always answers 200; a failing store marks the service degraded.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	var results map[string]string

	if len(h.checks) > 0 {
		results = make(map[string]string, len(h.checks))
		names := make([]string, 0, len(h.checks))
		for name := range h.checks {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
			err := h.checks[name].Ping(pingCtx)
			cancel()

			if err != nil {
				results[name] = "down"
				status = "degraded"
			} else {
				results[name] = "up"
			}
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Checks:    results,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
