package flag

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles the flag lifecycle: creation with immediate target
// suppression, admin resolution with outcome effects, and one-time
// appeals that reopen resolved flags.
type Service struct {
	repo     Repository
	videos   VideoStore
	comments CommentStore
	accounts AccountStore
}

// NewService creates flag service
func NewService(repo Repository, videos VideoStore, comments CommentStore, accounts AccountStore) *Service {
	return &Service{
		repo:     repo,
		videos:   videos,
		comments: comments,
		accounts: accounts,
	}
}

// Create files a flag and immediately suppresses the target. The flag
// write must succeed; the suppression step is best-effort and its
// failure is logged, never surfaced.
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, req *CreateFlagRequest) (*Flag, error) {
	f := &Flag{
		ID:        uuid.New(),
		Type:      TargetType(req.Type),
		TargetID:  req.TargetID,
		Reason:    req.Reason,
		Message:   req.Message,
		CreatedBy: actorID,
		Status:    StatusOpen,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	if err := s.targetFor(f).apply(ctx, true); err != nil {
		log.Error().Err(err).
			Str("flag_id", f.ID.String()).
			Str("type", string(f.Type)).
			Str("target_id", f.TargetID).
			Msg("failed to suppress flag target")
	}

	return f, nil
}

// ListAll returns every flag, newest first. Admin only, gated upstream.
func (s *Service) ListAll(ctx context.Context) ([]*Flag, error) {
	return s.repo.ListAll(ctx)
}

// ListMine returns flags the actor submitted, newest first
func (s *Service) ListMine(ctx context.Context, actorID uuid.UUID) ([]*Flag, error) {
	return s.repo.ListByCreator(ctx, actorID)
}

// ListForMe returns flags whose target belongs to the actor, newest
// first. Ownership is resolved up front: the actor's video ids, their
// comment ids, and their own account id.
func (s *Service) ListForMe(ctx context.Context, actorID uuid.UUID) ([]*Flag, error) {
	videoIDs, err := s.videos.ListIDsByOwner(ctx, actorID)
	if err != nil {
		return nil, err
	}
	commentIDs, err := s.comments.ListIDsByAuthor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByTargets(ctx, idStrings(videoIDs), idStrings(commentIDs), actorID.String())
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// Resolve applies an admin's partial update to a flag, then applies the
// resulting effect to the target. Providing an outcome without a status
// forces the flag to resolved. Target-effect failures are logged and
// swallowed: the flag record is the decision of record, target
// visibility syncs best-effort.
func (s *Service) Resolve(ctx context.Context, flagID uuid.UUID, req *ResolveFlagRequest) (*Flag, error) {
	f, err := s.repo.GetByID(ctx, flagID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFlagNotFound
	}

	if req.Status != nil {
		f.Status = Status(*req.Status)
	}
	if req.Resolution != nil {
		f.Resolution = req.Resolution
	}
	if req.Outcome != nil {
		outcome := Outcome(*req.Outcome)
		f.Outcome = &outcome
		if req.Status == nil {
			f.Status = StatusResolved
		}
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}

	if err := s.applyResolutionEffect(ctx, f, req); err != nil {
		log.Error().Err(err).
			Str("flag_id", f.ID.String()).
			Str("type", string(f.Type)).
			Str("target_id", f.TargetID).
			Msg("failed to apply resolution effect")
	}

	return f, nil
}

// Appeal lets the original submitter reopen a flag exactly once. A
// resolved flag returns to open; the prior outcome and resolution stay
// on the record.
func (s *Service) Appeal(ctx context.Context, actorID, flagID uuid.UUID, req *AppealFlagRequest) (*Flag, error) {
	f, err := s.repo.GetByID(ctx, flagID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFlagNotFound
	}
	if f.CreatedBy != actorID {
		return nil, ErrNotFlagOwner
	}
	if f.HasAppeal() {
		return nil, ErrAppealAlreadySubmitted
	}

	f.AppealMessage = &req.AppealMessage
	if f.Status == StatusResolved {
		f.Status = StatusOpen
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

// applyResolutionEffect maps (type, outcome, status) onto a target
// effect. Videos and comments take suppression = (outcome == denied);
// accounts invert, a denied outcome lifts the ban and unhides owned
// videos. Marking an account flag resolved without an outcome unbans
// by default. Anything else leaves the target alone.
func (s *Service) applyResolutionEffect(ctx context.Context, f *Flag, req *ResolveFlagRequest) error {
	switch {
	case req.Outcome != nil:
		denied := *f.Outcome == OutcomeDenied
		if f.Type == TargetAccount {
			return s.targetFor(f).apply(ctx, !denied)
		}
		return s.targetFor(f).apply(ctx, denied)
	case f.Type == TargetAccount && req.Status != nil && Status(*req.Status) == StatusResolved:
		return s.targetFor(f).apply(ctx, false)
	default:
		return nil
	}
}

func (s *Service) targetFor(f *Flag) target {
	switch f.Type {
	case TargetVideo:
		return videoTarget{videos: s.videos, id: f.TargetID}
	case TargetComment:
		return commentTarget{comments: s.comments, id: f.TargetID}
	default:
		return accountTarget{accounts: s.accounts, videos: s.videos, id: f.TargetID}
	}
}
