package comment

// CreateCommentRequest is the payload for posting a comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// SetHiddenRequest toggles comment visibility
type SetHiddenRequest struct {
	Hidden *bool `json:"hidden" validate:"required"`
}
