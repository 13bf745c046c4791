// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/http/handlers"
)

// Routes collects what NewRouter mounts.
type Routes struct {
	Escrow *handlers.EscrowHandler
	Health *handlers.HealthHandler

	// Metrics serves /metrics when non-nil.
	Metrics http.Handler

	// Authenticate guards every mutating route. Idempotency, when non-nil,
	// runs after it on the same routes.
	Authenticate func(http.Handler) http.Handler
	Idempotency  func(http.Handler) http.Handler
}

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(routes Routes, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health checks and scraping sit outside /api/v1.
	r.Get("/health/live", routes.Health.Liveness)
	r.Get("/health/ready", routes.Health.Readiness)
	if routes.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", routes.Metrics)
	}

	h := routes.Escrow
	r.Route("/api/v1", func(r chi.Router) {
		// Public read views.
		r.Get("/escrow", h.GetProject)
		r.Get("/escrow/client", h.GetClient)
		r.Get("/escrow/freelancer", h.GetFreelancer)
		r.Get("/escrow/state", h.GetState)
		r.Get("/escrow/balance", h.GetBalance)
		r.Get("/escrow/schedules", h.ListSchedules)
		r.Get("/escrow/schedules/count", h.ScheduleCount)
		r.Get("/escrow/schedules/{id}", h.GetSchedule)

		// Mutations act as the authenticated caller.
		r.Group(func(r chi.Router) {
			r.Use(routes.Authenticate)
			if routes.Idempotency != nil {
				r.Use(routes.Idempotency)
			}

			r.Post("/escrow", h.Construct)
			r.Put("/escrow/treasury", h.SetTreasury)
			r.Post("/escrow/accept", h.Accept)
			r.Post("/escrow/close", h.Close)
			r.Post("/escrow/schedules", h.AddSchedule)
			r.Post("/escrow/schedules/{id}/fund", h.FundTask)
			r.Post("/escrow/schedules/{id}/start", h.StartTask)
			r.Post("/escrow/schedules/{id}/approve", h.ApproveTask)
			r.Post("/escrow/schedules/{id}/release", h.ReleaseFunds)
		})
	})

	return r
}
