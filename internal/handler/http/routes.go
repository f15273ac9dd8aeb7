package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authentication
	router.Group(func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
	})

	// routes behind session resolution
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/users", h.listUsers)
		r.With(h.owner).Delete("/users/{id}", h.deleteUser)
	})

	return router
}
