package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns auth router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
		r.Put("/profile", h.UpdateProfile)
		r.Post("/password", h.ChangePassword)
		r.Post("/subscriptions/toggle", h.ToggleSubscription)
		r.Post("/avatar", h.UploadAvatar)
		r.Post("/header", h.UploadHeader)
	})

	return r
}
