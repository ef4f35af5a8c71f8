package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment left on a video
type Comment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	VideoID    uuid.UUID `db:"video_id" json:"videoId"`
	AuthorID   uuid.UUID `db:"author_id" json:"authorId"`
	AuthorName string    `db:"author_name" json:"authorName"`
	AvatarURL  string    `db:"avatar_url" json:"avatarUrl"`
	Text       string    `db:"text" json:"text"`
	Hidden     bool      `db:"hidden" json:"hidden"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}
