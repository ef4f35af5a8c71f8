package flag

// CreateFlagRequest is the payload for filing a flag
type CreateFlagRequest struct {
	Type     string `json:"type" validate:"required,flag_type"`
	TargetID string `json:"targetId" validate:"required"`
	Reason   string `json:"reason" validate:"required,min=3"`
	Message  string `json:"message"`
}

// ResolveFlagRequest is the admin payload for updating a flag.
// All fields are optional; only provided fields change.
type ResolveFlagRequest struct {
	Status     *string `json:"status" validate:"omitnil,flag_status"`
	Resolution *string `json:"resolution"`
	Outcome    *string `json:"outcome" validate:"omitnil,flag_outcome"`
}

// AppealFlagRequest is the submitter's one-time appeal payload
type AppealFlagRequest struct {
	AppealMessage string `json:"appealMessage" validate:"required"`
}
