package user

import (
	"time"

	"github.com/google/uuid"
)

// Role represents account role (matches account_role enum)
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Status represents account moderation status (matches account_status enum).
// Flagged accounts keep read access but cannot upload or comment.
type Status string

const (
	StatusActive  Status = "active"
	StatusFlagged Status = "flagged"
)

// User represents an account (matches users table)
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	AvatarURL    string    `db:"avatar_url"`
	HeaderURL    string    `db:"header_url"`
	Bio          string    `db:"bio"`
	Role         Role      `db:"role"`
	Status       Status    `db:"account_status"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsAdmin returns true if the account has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsFlagged returns true if the account is under moderation suppression
func (u *User) IsFlagged() bool {
	return u.Status == StatusFlagged
}
