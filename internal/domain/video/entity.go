package video

import (
	"time"

	"github.com/google/uuid"
)

// Video represents a content item (matches videos table).
// Media bytes live elsewhere; Src and Thumb are opaque URLs.
type Video struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerID     uuid.UUID `db:"owner_id" json:"ownerId"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Src         string    `db:"src" json:"src"`
	Length      string    `db:"length" json:"length"`
	Thumb       string    `db:"thumb" json:"thumb"`
	ChannelName string    `db:"channel_name" json:"channelName"`
	AvatarURL   string    `db:"avatar_url" json:"avatarUrl"`
	Hidden      bool      `db:"hidden" json:"hidden"`
	Views       int       `db:"views" json:"views"`
	LikesCount  int       `db:"likes_count" json:"likesCount"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// CanEdit reports whether the actor may modify this video
func (v *Video) CanEdit(actorID uuid.UUID, actorRole string) bool {
	return actorRole == "admin" || v.OwnerID == actorID
}
