package flag

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nottube/nottube-api/internal/domain/user"
)

// VideoStore is the slice of video access the moderation core needs
type VideoStore interface {
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error
	SetHiddenByOwner(ctx context.Context, ownerID uuid.UUID, hidden bool) error
	ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
}

// CommentStore is the slice of comment access the moderation core needs
type CommentStore interface {
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error
	ListIDsByAuthor(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error)
}

// AccountStore is the slice of account access the moderation core needs
type AccountStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	SetStatus(ctx context.Context, id uuid.UUID, status user.Status) error
}

// target applies the suppression side effect for one flag target kind.
// apply(true) suppresses the target, apply(false) restores it. Targets
// that cannot be resolved (bad or unknown id) no-op without error.
type target interface {
	apply(ctx context.Context, suppressed bool) error
}

type videoTarget struct {
	videos VideoStore
	id     string
}

func (t videoTarget) apply(ctx context.Context, suppressed bool) error {
	id, err := uuid.Parse(t.id)
	if err != nil {
		log.Debug().Str("target_id", t.id).Msg("skipping effect on unparsable video target")
		return nil
	}
	return t.videos.SetHidden(ctx, id, suppressed)
}

type commentTarget struct {
	comments CommentStore
	id       string
}

func (t commentTarget) apply(ctx context.Context, suppressed bool) error {
	id, err := uuid.Parse(t.id)
	if err != nil {
		log.Debug().Str("target_id", t.id).Msg("skipping effect on unparsable comment target")
		return nil
	}
	return t.comments.SetHidden(ctx, id, suppressed)
}

// accountTarget suppresses an account by marking it flagged and hiding
// every video it owns. Admin accounts are exempt in both directions.
type accountTarget struct {
	accounts AccountStore
	videos   VideoStore
	id       string
}

func (t accountTarget) apply(ctx context.Context, suppressed bool) error {
	id, err := uuid.Parse(t.id)
	if err != nil {
		log.Debug().Str("target_id", t.id).Msg("skipping effect on unparsable account target")
		return nil
	}

	account, err := t.accounts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		log.Debug().Str("target_id", t.id).Msg("skipping effect on unknown account target")
		return nil
	}
	if account.IsAdmin() {
		return nil
	}

	status := user.StatusActive
	if suppressed {
		status = user.StatusFlagged
	}
	if err := t.accounts.SetStatus(ctx, id, status); err != nil {
		return err
	}

	return t.videos.SetHiddenByOwner(ctx, id, suppressed)
}
