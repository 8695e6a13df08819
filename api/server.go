/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the back-office frontend

SECURITY NOTE:
  No authentication middleware. Permission gating lives in the calling
  back-office application, outside this service.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Timesheet routes
		r.Route("/timesheets", func(r chi.Router) {
			r.Get("/", h.ListTimesheets)
			r.Post("/", h.CreateTimesheet)
			r.Get("/{id}", h.GetTimesheet)
			r.Delete("/{id}", h.DeleteTimesheet)
			r.Post("/{id}/validate", h.ValidateTimesheet)
			r.Post("/{id}/approve", h.ApproveTimesheet)
			r.Post("/{id}/reject", h.RejectTimesheet)
			r.Post("/{id}/process", h.ProcessTimesheet)
			r.Post("/{id}/reopen", h.ReopenTimesheet)
		})

		// Shift routes
		r.Route("/shifts", func(r chi.Router) {
			r.Post("/price", h.PriceShift)
			r.Post("/classify", h.ClassifyShift)
		})

		// Rate card routes
		r.Route("/ratecards", func(r chi.Router) {
			r.Get("/", h.ListRateCards)
			r.Post("/", h.CreateRateCard)
			r.Get("/resolve", h.ResolveRateCard)
			r.Get("/{id}", h.GetRateCard)
			r.Delete("/{id}", h.DeleteRateCard)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", h.SummaryReport)
		})
	})

	return r
}
