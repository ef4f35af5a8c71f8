package auth

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/nottube/nottube-api/internal/domain/user"
	"github.com/nottube/nottube-api/internal/pkg/imaging"
	"github.com/nottube/nottube-api/internal/pkg/jwt"
	"github.com/nottube/nottube-api/internal/pkg/password"
	"github.com/nottube/nottube-api/internal/pkg/storage"
)

// ChannelSync pushes profile changes onto content owned by the account.
// Implemented by the video repository.
type ChannelSync interface {
	SyncOwnerProfile(ctx context.Context, ownerID uuid.UUID, channelName, avatarURL, headerURL string) error
}

// Service handles authentication and profile business logic
type Service struct {
	userRepo    user.Repository
	jwtService  *jwt.Service
	redis       *redis.Client // nil if Redis disabled
	channelSync ChannelSync
	adminEmails []string
	files       storage.Storage
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service, redis *redis.Client, channelSync ChannelSync, adminEmails []string, files storage.Storage) *Service {
	return &Service{
		userRepo:    userRepo,
		jwtService:  jwtService,
		redis:       redis,
		channelSync: channelSync,
		adminEmails: adminEmails,
		files:       files,
	}
}

// Signup creates a new account
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, _ := s.userRepo.GetByEmail(ctx, email)
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	role := user.RoleUser
	if s.isAdminEmail(email) {
		role = user.RoleAdmin
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		AvatarURL:    req.AvatarURL,
		Role:         role,
		Status:       user.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.generateTokens(ctx, u)
}

// Login authenticates by email or channel name
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)

	u, err := s.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	u = s.ensureAdminRole(ctx, u)

	return s.generateTokens(ctx, u)
}

// Refresh rotates the refresh token and issues a new pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	refreshHash := jwt.HashRefreshToken(refreshToken)
	userID, err := s.getRefreshToken(ctx, refreshHash)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	// Token rotation: old refresh token is single use
	_ = s.deleteRefreshToken(ctx, refreshHash)

	return s.generateTokens(ctx, u)
}

// Logout invalidates the refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil // nothing to logout
	}
	return s.deleteRefreshToken(ctx, jwt.HashRefreshToken(refreshToken))
}

// GetCurrentUser returns the authenticated account's public profile
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	u = s.ensureAdminRole(ctx, u)

	subs, err := s.userRepo.ListSubscriptions(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	resp := NewUserResponse(u, subs)
	return &resp, nil
}

// UpdateProfile applies a partial profile update and syncs channel info
// onto owned videos (best effort)
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.AvatarURL != nil {
		u.AvatarURL = *req.AvatarURL
	}
	if req.HeaderURL != nil {
		u.HeaderURL = *req.HeaderURL
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}

	if err := s.userRepo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}

	// Keep channel name/avatar in sync on existing videos; failures are tolerated
	if s.channelSync != nil {
		if err := s.channelSync.SyncOwnerProfile(ctx, u.ID, u.Name, u.AvatarURL, u.HeaderURL); err != nil {
			log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("failed to sync profile onto owned videos")
		}
	}

	subs, _ := s.userRepo.ListSubscriptions(ctx, u.ID)
	resp := NewUserResponse(u, subs)
	return &resp, nil
}

// ChangePassword verifies the current password and sets a new one
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return ErrUserNotFound
	}

	if !password.Verify(req.CurrentPassword, u.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

// ToggleSubscription follows/unfollows a channel
func (s *Service) ToggleSubscription(ctx context.Context, userID uuid.UUID, channel string) (*ToggleSubscriptionResponse, error) {
	subscribed, err := s.userRepo.ToggleSubscription(ctx, userID, channel)
	if err != nil {
		return nil, err
	}

	subs, err := s.userRepo.ListSubscriptions(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ToggleSubscriptionResponse{Subscribed: subscribed, Subscriptions: subs}, nil
}

// UploadAvatar resizes and stores an avatar image, then updates the profile
func (s *Service) UploadAvatar(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	url, err := s.processAndStore(ctx, filename, file, imaging.AvatarConfig(), "avatars")
	if err != nil {
		return nil, err
	}

	old := u.AvatarURL
	u.AvatarURL = url
	if err := s.userRepo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	s.cleanupStored(ctx, old)

	if s.channelSync != nil {
		if err := s.channelSync.SyncOwnerProfile(ctx, u.ID, u.Name, u.AvatarURL, u.HeaderURL); err != nil {
			log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("failed to sync avatar onto owned videos")
		}
	}

	subs, _ := s.userRepo.ListSubscriptions(ctx, u.ID)
	resp := NewUserResponse(u, subs)
	return &resp, nil
}

// UploadHeader resizes and stores a channel header image
func (s *Service) UploadHeader(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	url, err := s.processAndStore(ctx, filename, file, imaging.HeaderConfig(), "headers")
	if err != nil {
		return nil, err
	}

	old := u.HeaderURL
	u.HeaderURL = url
	if err := s.userRepo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	s.cleanupStored(ctx, old)

	subs, _ := s.userRepo.ListSubscriptions(ctx, u.ID)
	resp := NewUserResponse(u, subs)
	return &resp, nil
}

// processAndStore validates, resizes and stores an uploaded image,
// returning its public URL
func (s *Service) processAndStore(ctx context.Context, filename string, file io.Reader, cfg imaging.Config, dir string) (string, error) {
	if !imaging.ValidateType(filename) {
		return "", ErrInvalidImage
	}

	processed, err := imaging.NewProcessor(cfg).Process(file)
	if err != nil {
		return "", ErrInvalidImage
	}

	ext := ".jpg"
	if processed.ContentType == "image/png" {
		ext = ".png"
	}
	key := fmt.Sprintf("%s/%s%s", dir, uuid.New().String(), ext)

	if err := s.files.Put(ctx, key, bytes.NewReader(processed.Data), processed.ContentType); err != nil {
		return "", err
	}
	return s.files.URL(key), nil
}

// cleanupStored best-effort deletes a previously stored image once the
// profile no longer references it. External URLs are left alone.
func (s *Service) cleanupStored(ctx context.Context, url string) {
	key := storedKey(url)
	if key == "" {
		return
	}
	if err := s.files.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete replaced image")
	}
}

// storedKey recovers the object key from a URL this service produced.
// Empty or external URLs yield "".
func storedKey(url string) string {
	for _, dir := range []string{"avatars/", "headers/"} {
		if i := strings.Index(url, "/"+dir); i >= 0 {
			return url[i+1:]
		}
	}
	return ""
}

// ensureAdminRole promotes the account when its email is on the admin list.
// Reconciliation runs on login and profile fetch so a list change takes
// effect without touching existing rows.
func (s *Service) ensureAdminRole(ctx context.Context, u *user.User) *user.User {
	if u.Role == user.RoleAdmin || !s.isAdminEmail(u.Email) {
		return u
	}
	if err := s.userRepo.SetRole(ctx, u.ID, user.RoleAdmin); err != nil {
		log.Error().Err(err).Str("user_id", u.ID.String()).Msg("failed to promote admin account")
		return u
	}
	u.Role = user.RoleAdmin
	return u
}

func (s *Service) isAdminEmail(email string) bool {
	email = strings.ToLower(email)
	for _, e := range s.adminEmails {
		if e == email {
			return true
		}
	}
	return false
}

// generateTokens creates access and refresh tokens
func (s *Service) generateTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	// Store hash(refresh) in Redis
	refreshHash := jwt.HashRefreshToken(refreshToken)
	if err := s.storeRefreshToken(ctx, refreshHash, u.ID); err != nil {
		return nil, err
	}

	subs, err := s.userRepo.ListSubscriptions(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: NewUserResponse(u, subs),
		Tokens: TokensResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken, // raw refresh goes to the client
			ExpiresIn:    int(s.jwtService.GetAccessTTL().Seconds()),
		},
	}, nil
}

// Redis helpers (handle nil redis gracefully)
func (s *Service) storeRefreshToken(ctx context.Context, token string, userID uuid.UUID) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Set(ctx, "refresh:"+token, userID.String(), s.jwtService.GetRefreshTTL()).Err()
}

func (s *Service) getRefreshToken(ctx context.Context, token string) (uuid.UUID, error) {
	if s.redis == nil {
		// Without Redis, refresh tokens don't work
		return uuid.Nil, ErrInvalidRefreshToken
	}
	val, err := s.redis.Get(ctx, "refresh:"+token).Result()
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return uuid.Parse(val)
}

func (s *Service) deleteRefreshToken(ctx context.Context, token string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, "refresh:"+token).Err()
}
