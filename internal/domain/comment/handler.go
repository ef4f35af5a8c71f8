package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nottube/nottube-api/internal/middleware"
	"github.com/nottube/nottube-api/internal/pkg/response"
	"github.com/nottube/nottube-api/internal/pkg/validator"
)

// Handler handles comment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates comment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListByVideo handles GET /comments/video/{id}
func (h *Handler) ListByVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid video ID")
		return
	}

	comments, err := h.service.ListByVideo(r.Context(), videoID)
	if err != nil {
		if err == ErrVideoNotFound {
			response.NotFound(w, "Video not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"comments": comments})
}

// Create handles POST /comments/video/{id}
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid video ID")
		return
	}

	var req CreateCommentRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	c, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), videoID, &req)
	if err != nil {
		switch err {
		case ErrVideoNotFound:
			response.NotFound(w, "Video not found")
		case ErrAccountFlagged:
			response.Forbidden(w, "Account is flagged and cannot comment")
		case ErrNotAllowed:
			response.Forbidden(w, "Not allowed")
		default:
			log.Error().Err(err).Msg("failed to create comment")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, map[string]interface{}{"comment": c})
}

// Delete handles DELETE /comments/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid comment ID")
		return
	}

	ctx := r.Context()
	if err := h.service.Delete(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), id); err != nil {
		switch err {
		case ErrCommentNotFound:
			response.NotFound(w, "Comment not found")
		case ErrNotAllowed:
			response.Forbidden(w, "Not allowed")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]bool{"ok": true})
}

// SetHidden handles PATCH /comments/{id}/visibility
func (h *Handler) SetHidden(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid comment ID")
		return
	}

	var req SetHiddenRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	c, err := h.service.SetHidden(r.Context(), id, *req.Hidden)
	if err != nil {
		if err == ErrCommentNotFound {
			response.NotFound(w, "Comment not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"comment": c})
}
