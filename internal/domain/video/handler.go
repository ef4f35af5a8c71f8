package video

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nottube/nottube-api/internal/middleware"
	"github.com/nottube/nottube-api/internal/pkg/response"
	"github.com/nottube/nottube-api/internal/pkg/validator"
)

// Handler handles video HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates video handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /videos?search=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		log.Error().Err(err).Msg("failed to list videos")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"videos": videos})
}

// ListMine handles GET /videos/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	videos, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"videos": videos})
}

// ListSaved handles GET /videos/saved
func (h *Handler) ListSaved(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	videos, err := h.service.ListSaved(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"videos": videos})
}

// Create handles POST /videos
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateVideoRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	v, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrAccountFlagged:
			response.Forbidden(w, "Account is flagged and cannot upload")
		case ErrNotAllowed:
			response.Forbidden(w, "Not allowed")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create video")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, map[string]interface{}{"video": v})
}

// Get handles GET /videos/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid video ID")
		return
	}

	v, err := h.service.Get(r.Context(), id)
	if err != nil {
		if err == ErrVideoNotFound {
			response.NotFound(w, "Video not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"video": v})
}

// Update handles PUT /videos/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid video ID")
		return
	}

	var req UpdateVideoRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	ctx := r.Context()
	v, err := h.service.Update(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), id, &req)
	if err != nil {
		switch err {
		case ErrVideoNotFound:
			response.NotFound(w, "Video not found")
		case ErrNotAllowed:
			response.Forbidden(w, "Not allowed")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"video": v})
}

// Delete handles DELETE /videos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid video ID")
		return
	}

	ctx := r.Context()
	if err := h.service.Delete(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), id); err != nil {
		switch err {
		case ErrVideoNotFound:
			response.NotFound(w, "Video not found")
		case ErrNotAllowed:
			response.Forbidden(w, "Not allowed")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]bool{"ok": true})
}

// Like handles POST /videos/{id}/like
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	h.engage(w, r, func(ctx context.Context, userID, videoID uuid.UUID) (interface{}, error) {
		return h.service.Like(ctx, userID, videoID)
	})
}

// Save handles POST /videos/{id}/save
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	h.engage(w, r, func(ctx context.Context, userID, videoID uuid.UUID) (interface{}, error) {
		return h.service.Save(ctx, userID, videoID)
	})
}

// Watch handles POST /videos/{id}/watch
func (h *Handler) Watch(w http.ResponseWriter, r *http.Request) {
	h.engage(w, r, func(ctx context.Context, userID, videoID uuid.UUID) (interface{}, error) {
		return h.service.Watch(ctx, userID, videoID)
	})
}

// engage is the shared shape of like/save/watch toggles
func (h *Handler) engage(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, userID, videoID uuid.UUID) (interface{}, error)) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid video ID")
		return
	}

	result, err := fn(r.Context(), middleware.GetUserID(r.Context()), videoID)
	if err != nil {
		if err == ErrVideoNotFound {
			response.NotFound(w, "Video not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}
