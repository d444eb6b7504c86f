/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the desktop shell's webview

SECURITY NOTE:
  Login exists but no session middleware guards the other endpoints; the
  presentation layer enforces role-based access. Authentication strength
  is out of scope for this system.
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
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		// Reference data
		r.Route("/reference", func(r chi.Router) {
			r.Get("/", h.GetReference)
			r.Put("/", h.SaveReference)
			r.Post("/init", h.InitReference)
			r.Post("/import", h.ImportReference)
			r.Post("/import/agents", h.ImportAgents)
		})

		// Cascading taxonomy queries
		r.Route("/taxonomy", func(r chi.Router) {
			r.Get("/families", h.ListFamilies)
			r.Get("/families/{id}/products", h.ListProducts)
			r.Get("/products/{id}/models", h.ListModels)
			r.Get("/products/{id}/faults", h.ListFaults)
			r.Get("/products/{id}/causes", h.ListCauses)
			r.Get("/products/{id}/fix", h.GetFix)
		})

		// Ticket ledger
		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", h.ListTickets)
			r.Post("/", h.CreateTicket)
			r.Get("/options", h.GetTicketOptions)
		})

		// Archives
		r.Route("/archives", func(r chi.Router) {
			r.Get("/", h.ListArchives)
			r.Post("/", h.CreateArchive)
			r.Get("/{filename}/tickets", h.ReadArchive)
		})
	})

	return r
}
