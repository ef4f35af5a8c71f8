package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrVideoNotFound   = errors.New("video not found")
	ErrNotAllowed      = errors.New("not allowed")
	ErrAccountFlagged  = errors.New("account is flagged")
)
