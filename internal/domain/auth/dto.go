package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/nottube/nottube-api/internal/domain/user"
)

// SignupRequest for POST /auth/signup
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=128"`
	Name      string `json:"name" validate:"omitempty,min=1,max=100"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,max=2048"`
}

// LoginRequest for POST /auth/login — identifier is email or channel name
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
}

// RefreshRequest for POST /auth/refresh and /auth/logout
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UpdateProfileRequest for PUT /auth/profile (partial update)
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,max=2048"`
	HeaderURL *string `json:"headerUrl" validate:"omitempty,max=2048"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
}

// ChangePasswordRequest for POST /auth/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,min=6"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=128"`
}

// ToggleSubscriptionRequest for POST /auth/subscriptions/toggle
type ToggleSubscriptionRequest struct {
	Channel string `json:"channel" validate:"required,min=1,max=100"`
}

// ToggleSubscriptionResponse reports the new subscription state
type ToggleSubscriptionResponse struct {
	Subscribed    bool     `json:"subscribed"`
	Subscriptions []string `json:"subscriptions"`
}

// AuthResponse returned after signup/login/refresh
type AuthResponse struct {
	User   UserResponse   `json:"user"`
	Tokens TokensResponse `json:"tokens"`
}

// UserResponse represents the public view of an account
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	AvatarURL     string    `json:"avatarUrl"`
	HeaderURL     string    `json:"headerUrl"`
	Bio           string    `json:"bio"`
	Role          string    `json:"role"`
	AccountStatus string    `json:"accountStatus"`
	Subscriptions []string  `json:"subscriptions"`
	CreatedAt     string    `json:"createdAt"`
}

// TokensResponse represents tokens in API response
type TokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"` // seconds until access token expires
}

// NewUserResponse builds a UserResponse from an account entity
func NewUserResponse(u *user.User, subscriptions []string) UserResponse {
	if subscriptions == nil {
		subscriptions = []string{}
	}
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		AvatarURL:     u.AvatarURL,
		HeaderURL:     u.HeaderURL,
		Bio:           u.Bio,
		Role:          string(u.Role),
		AccountStatus: string(u.Status),
		Subscriptions: subscriptions,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}
