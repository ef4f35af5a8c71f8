package comment

import (
	"context"

	"github.com/google/uuid"

	"github.com/nottube/nottube-api/internal/domain/user"
	"github.com/nottube/nottube-api/internal/domain/video"
)

// VideoStore is the slice of video access the comment service needs
type VideoStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*video.Video, error)
}

// Service handles comment business logic
type Service struct {
	repo     Repository
	videos   VideoStore
	userRepo user.Repository
}

// NewService creates comment service
func NewService(repo Repository, videos VideoStore, userRepo user.Repository) *Service {
	return &Service{
		repo:     repo,
		videos:   videos,
		userRepo: userRepo,
	}
}

// ListByVideo returns visible comments for a video, oldest first
func (s *Service) ListByVideo(ctx context.Context, videoID uuid.UUID) ([]*Comment, error) {
	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVideoNotFound
	}

	return s.repo.ListByVideo(ctx, videoID)
}

// Create posts a comment on a video
func (s *Service) Create(ctx context.Context, authorID, videoID uuid.UUID, req *CreateCommentRequest) (*Comment, error) {
	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVideoNotFound
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrNotAllowed
	}
	if author.IsFlagged() {
		return nil, ErrAccountFlagged
	}

	c := &Comment{
		ID:         uuid.New(),
		VideoID:    videoID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		AvatarURL:  author.AvatarURL,
		Text:       req.Text,
		Hidden:     false,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete removes a comment. Allowed for the comment author, the video
// owner, and admins.
func (s *Service) Delete(ctx context.Context, actorID uuid.UUID, actorRole string, commentID uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCommentNotFound
	}

	if !s.canDelete(ctx, actorID, actorRole, c) {
		return ErrNotAllowed
	}

	return s.repo.Delete(ctx, commentID)
}

// SetHidden toggles comment visibility
func (s *Service) SetHidden(ctx context.Context, commentID uuid.UUID, hidden bool) (*Comment, error) {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCommentNotFound
	}

	if err := s.repo.SetHidden(ctx, commentID, hidden); err != nil {
		return nil, err
	}

	c.Hidden = hidden
	return c, nil
}

func (s *Service) canDelete(ctx context.Context, actorID uuid.UUID, actorRole string, c *Comment) bool {
	if actorRole == string(user.RoleAdmin) || c.AuthorID == actorID {
		return true
	}

	v, err := s.videos.GetByID(ctx, c.VideoID)
	if err != nil || v == nil {
		return false
	}
	return v.OwnerID == actorID
}
