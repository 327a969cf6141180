package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes for authenticated users
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/protected", h.protected)
	})

	// administrative routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.adminOnly)

		r.Post("/api/admin/block-users", h.blockUsers)
		r.Post("/api/admin/unblock-users", h.unblockUsers)
		r.Post("/api/admin/delete-users", h.deleteUsers)
		r.Get("/api/admin/users", h.listUsers)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
