package http

import (
	"context"
	"net/http"
	"time"

	"loan-underwriter/logger"
)

// Pinger is a dependency that can report its availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps map[string]Pinger
	log  logger.Logger
}

func NewHealthHandler(log logger.Logger, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps, log: log}
}

// Health handles GET /health. It only reports that the process serves requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /ready by pinging every dependency.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	status := http.StatusOK
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.log.WithError(err).Warn("readiness check failed", map[string]interface{}{"dependency": name})
			checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	overall := "ready"
	if status != http.StatusOK {
		overall = "not_ready"
	}
	writeJSON(w, h.log, status, map[string]interface{}{"status": overall, "checks": checks})
}
