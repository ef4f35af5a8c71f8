package flag

import (
	"time"

	"github.com/google/uuid"
)

// TargetType identifies which kind of entity a flag points at
type TargetType string

const (
	TargetVideo   TargetType = "video"
	TargetAccount TargetType = "account"
	TargetComment TargetType = "comment"
)

// Status represents the review state of a flag
type Status string

const (
	StatusOpen     Status = "open"
	StatusInReview Status = "in_review"
	StatusResolved Status = "resolved"
)

// Outcome is the admin verdict on a flag. Denied keeps a video or
// comment hidden but lifts an account ban; accepted does the opposite.
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeDenied   Outcome = "denied"
)

// Flag represents a moderation report against a video, comment, or account.
// TargetID is kept as an opaque string: targets are never checked for
// existence when a flag is filed, and effects on missing targets no-op.
type Flag struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Type          TargetType `db:"type" json:"type"`
	TargetID      string     `db:"target_id" json:"targetId"`
	Reason        string     `db:"reason" json:"reason"`
	Message       string     `db:"message" json:"message"`
	CreatedBy     uuid.UUID  `db:"created_by" json:"createdBy"`
	Status        Status     `db:"status" json:"status"`
	Outcome       *Outcome   `db:"outcome" json:"outcome,omitempty"`
	Resolution    *string    `db:"resolution" json:"resolution,omitempty"`
	AppealMessage *string    `db:"appeal_message" json:"appealMessage,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// HasAppeal reports whether the submitter already used their one appeal
func (f *Flag) HasAppeal() bool {
	return f.AppealMessage != nil
}
