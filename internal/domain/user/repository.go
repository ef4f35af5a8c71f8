package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines account data access interface
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByIdentifier resolves email or channel name (login accepts either)
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	SetRole(ctx context.Context, id uuid.UUID, role Role) error

	// Subscriptions (channel follows)
	ListSubscriptions(ctx context.Context, userID uuid.UUID) ([]string, error)
	ToggleSubscription(ctx context.Context, userID uuid.UUID, channel string) (subscribed bool, err error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new account repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, name, password_hash, avatar_url, header_url, bio, role, account_status, created_at, updated_at`

// Create creates a new account
func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, avatar_url, header_url, bio, role, account_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.AvatarURL,
		user.HeaderURL,
		user.Bio,
		user.Role,
		user.Status,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("user repository create: %w", err)
	}

	return nil
}

// GetByID returns account by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// GetByEmail returns account by email
func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// GetByIdentifier returns account by email (lowercased) or channel name (verbatim)
func (r *repository) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = LOWER($1) OR name = $1 LIMIT 1`
	var user User
	err := r.db.GetContext(ctx, &user, query, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// UpdateProfile updates mutable profile fields
func (r *repository) UpdateProfile(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = $2, avatar_url = $3, header_url = $4, bio = $5, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.AvatarURL,
		user.HeaderURL,
		user.Bio,
	)
	if err != nil {
		return fmt.Errorf("user repository update profile: %w", err)
	}

	return nil
}

// UpdatePassword updates account password hash
func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, passwordHash)
	return err
}

// SetStatus updates account moderation status
func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE users SET account_status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

// SetRole updates account role
func (r *repository) SetRole(ctx context.Context, id uuid.UUID, role Role) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, role)
	return err
}

// ListSubscriptions returns channels the account follows, newest first
func (r *repository) ListSubscriptions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `SELECT channel FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC`
	channels := []string{}
	err := r.db.SelectContext(ctx, &channels, query, userID)
	return channels, err
}

// ToggleSubscription follows the channel if not followed, unfollows otherwise
func (r *repository) ToggleSubscription(ctx context.Context, userID uuid.UUID, channel string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE user_id = $1 AND channel = $2`,
		userID, channel,
	)
	if err != nil {
		return false, fmt.Errorf("user repository toggle subscription: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, nil // was subscribed, now removed
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (user_id, channel, created_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id, channel) DO NOTHING`,
		userID, channel,
	)
	if err != nil {
		return false, fmt.Errorf("user repository toggle subscription: %w", err)
	}
	return true, nil
}
