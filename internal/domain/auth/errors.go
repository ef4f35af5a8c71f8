package auth

import "errors"

var (
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUserNotFound        = errors.New("user not found")
	ErrWrongPassword       = errors.New("current password is incorrect")
	ErrInvalidImage        = errors.New("invalid image file")
)
