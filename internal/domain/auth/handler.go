package auth

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nottube/nottube-api/internal/middleware"
	"github.com/nottube/nottube-api/internal/pkg/imaging"
	"github.com/nottube/nottube-api/internal/pkg/response"
	"github.com/nottube/nottube-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Signup handles POST /auth/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	result, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrEmailAlreadyExists:
			response.Conflict(w, "Email already in use")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("failed to sign up user")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid credentials")
		default:
			log.Error().Err(err).Msg("failed to log in user")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	result, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case ErrInvalidRefreshToken, ErrUserNotFound:
			response.Unauthorized(w, "Invalid or expired refresh token")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]bool{"ok": true})
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	u, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		if err == ErrUserNotFound {
			response.NotFound(w, "User not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"user": u})
}

// UpdateProfile handles PUT /auth/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		if err == ErrUserNotFound {
			response.NotFound(w, "User not found")
		} else {
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update profile")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"user": u})
}

// ChangePassword handles POST /auth/password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ChangePasswordRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, &req); err != nil {
		switch err {
		case ErrWrongPassword:
			response.BadRequest(w, "Current password is incorrect")
		case ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]bool{"ok": true})
}

// ToggleSubscription handles POST /auth/subscriptions/toggle
func (h *Handler) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ToggleSubscriptionRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	result, err := h.service.ToggleSubscription(r.Context(), userID, req.Channel)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, result)
}

// UploadAvatar handles POST /auth/avatar (multipart)
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	h.handleImageUpload(w, r, h.service.UploadAvatar)
}

// UploadHeader handles POST /auth/header (multipart)
func (h *Handler) UploadHeader(w http.ResponseWriter, r *http.Request) {
	h.handleImageUpload(w, r, h.service.UploadHeader)
}

func (h *Handler) handleImageUpload(w http.ResponseWriter, r *http.Request, upload func(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*UserResponse, error)) {
	userID := middleware.GetUserID(r.Context())

	if err := r.ParseMultipartForm(imaging.MaxFileSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field")
		return
	}
	defer file.Close()

	if header.Size > imaging.MaxFileSize {
		response.BadRequest(w, "File too large (max 10MB)")
		return
	}

	u, err := upload(r.Context(), userID, header.Filename, file)
	if err != nil {
		switch err {
		case ErrInvalidImage:
			response.BadRequest(w, "Unsupported or corrupt image file")
		case ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to upload image")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"user": u})
}
