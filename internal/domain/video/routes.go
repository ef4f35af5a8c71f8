package video

import (
	"github.com/go-chi/chi/v5"

	"github.com/nottube/nottube-api/internal/middleware"
	"github.com/nottube/nottube-api/internal/pkg/jwt"
)

// RegisterRoutes registers video routes
func RegisterRoutes(r chi.Router, handler *Handler, jwtService *jwt.Service) {
	r.Route("/videos", func(r chi.Router) {
		// Public routes
		r.Get("/", handler.List)
		r.Get("/{id}", handler.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(jwtService))

			r.Get("/mine", handler.ListMine)
			r.Get("/saved", handler.ListSaved)
			r.Post("/", handler.Create)
			r.Put("/{id}", handler.Update)
			r.Delete("/{id}", handler.Delete)
			r.Post("/{id}/like", handler.Like)
			r.Post("/{id}/save", handler.Save)
			r.Post("/{id}/watch", handler.Watch)
		})
	})
}
