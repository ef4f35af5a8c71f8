package video

import "errors"

var (
	ErrVideoNotFound  = errors.New("video not found")
	ErrNotAllowed     = errors.New("not allowed")
	ErrAccountFlagged = errors.New("account is flagged and cannot upload")
)
