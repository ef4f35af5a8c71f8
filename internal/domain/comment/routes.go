package comment

import (
	"github.com/go-chi/chi/v5"

	"github.com/nottube/nottube-api/internal/middleware"
	"github.com/nottube/nottube-api/internal/pkg/jwt"
)

// RegisterRoutes registers comment routes
func RegisterRoutes(r chi.Router, handler *Handler, jwtService *jwt.Service) {
	r.Route("/comments", func(r chi.Router) {
		// Public routes
		r.Get("/video/{id}", handler.ListByVideo)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(jwtService))

			r.Post("/video/{id}", handler.Create)
			r.Delete("/{id}", handler.Delete)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin())
				r.Patch("/{id}/visibility", handler.SetHidden)
			})
		})
	})
}
