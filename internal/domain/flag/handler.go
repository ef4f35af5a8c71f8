package flag

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nottube/nottube-api/internal/middleware"
	"github.com/nottube/nottube-api/internal/pkg/response"
	"github.com/nottube/nottube-api/internal/pkg/validator"
)

// Handler handles flag HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates flag handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /flags
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFlagRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	f, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		log.Error().Err(err).Msg("failed to create flag")
		response.InternalError(w)
		return
	}

	response.Created(w, map[string]interface{}{"flag": f})
}

// List handles GET /flags (admin)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	flags, err := h.service.ListAll(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"flags": flags})
}

// ListMine handles GET /flags/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	flags, err := h.service.ListMine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"flags": flags})
}

// ListForMe handles GET /flags/for-me
func (h *Handler) ListForMe(w http.ResponseWriter, r *http.Request) {
	flags, err := h.service.ListForMe(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"flags": flags})
}

// Resolve handles PATCH /flags/{id} (admin)
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid flag ID")
		return
	}

	var req ResolveFlagRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	f, err := h.service.Resolve(r.Context(), id, &req)
	if err != nil {
		if err == ErrFlagNotFound {
			response.NotFound(w, "Flag not found")
		} else {
			log.Error().Err(err).Str("flag_id", id.String()).Msg("failed to resolve flag")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"flag": f})
}

// Appeal handles POST /flags/{id}/appeal
func (h *Handler) Appeal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid flag ID")
		return
	}

	var req AppealFlagRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	f, err := h.service.Appeal(r.Context(), middleware.GetUserID(r.Context()), id, &req)
	if err != nil {
		switch err {
		case ErrFlagNotFound:
			response.NotFound(w, "Flag not found")
		case ErrNotFlagOwner:
			response.Forbidden(w, "Only the flag submitter can appeal")
		case ErrAppealAlreadySubmitted:
			response.Conflict(w, "Appeal already submitted")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"flag": f})
}
