package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the API HTTP router.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health endpoint for infra checks; never touches the store.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/members", s.handleRegister)
		r.Get("/members", s.handleListMembers)
		r.Post("/contact", s.handleContact)
		r.Get("/projects", s.handleListProjects)

		// Admin-only endpoints: Bearer JWT resolved to a member, then
		// checked against the allowlist.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/messages", s.handleListMessages)
			r.Put("/messages", s.handleSetMessageRead)
			r.Post("/projects", s.handleCreateProject)
			r.Delete("/projects/{id}", s.handleDeleteProject)
		})
	})

	return r
}
