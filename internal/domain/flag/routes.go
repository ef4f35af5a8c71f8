package flag

import (
	"github.com/go-chi/chi/v5"

	"github.com/nottube/nottube-api/internal/middleware"
	"github.com/nottube/nottube-api/internal/pkg/jwt"
)

// RegisterRoutes registers flag routes. All flag operations require
// authentication; listing everything and resolving require admin.
func RegisterRoutes(r chi.Router, handler *Handler, jwtService *jwt.Service) {
	r.Route("/flags", func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))

		r.Post("/", handler.Create)
		r.Get("/mine", handler.ListMine)
		r.Get("/for-me", handler.ListForMe)
		r.Post("/{id}/appeal", handler.Appeal)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			r.Get("/", handler.List)
			r.Patch("/{id}", handler.Resolve)
		})
	})
}
