package handlers

import (
	"errors"
	"net/http"

	"github.com/jsamuelsen11/milestone-escrow/internal/platform/health"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Readiness states. Degraded means an optional dependency is down: the
// service still accepts operations and the outbox holds deliveries.
const (
	statusOK       = "ok"
	statusReady    = "ready"
	statusDegraded = "degraded"
	statusNotReady = "not_ready"
)

// HealthResponse is the readiness body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	registry ports.HealthRegistry
}

func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{Status: statusOK})
}

// Readiness handles GET /health/ready: 503 when a required dependency
// fails, 200 otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: statusReady, Checks: map[string]string{}}
	code := http.StatusOK

	for name, err := range h.registry.CheckAll(r.Context()) {
		switch {
		case err == nil:
			resp.Checks[name] = statusOK
		case errors.Is(err, health.ErrDegraded):
			resp.Checks[name] = err.Error()
			if resp.Status == statusReady {
				resp.Status = statusDegraded
			}
		default:
			resp.Checks[name] = err.Error()
			resp.Status = statusNotReady
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, r, code, resp)
}
