package flag

import "errors"

var (
	ErrFlagNotFound           = errors.New("flag not found")
	ErrNotFlagOwner           = errors.New("not the flag owner")
	ErrAppealAlreadySubmitted = errors.New("appeal already submitted")
)
