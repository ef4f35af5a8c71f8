package video

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nottube/nottube-api/internal/domain/user"
)

const listLimit = 100

// Service handles video business logic
type Service struct {
	repo     Repository
	userRepo user.Repository
}

// NewService creates video service
func NewService(repo Repository, userRepo user.Repository) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

// List returns visible videos, newest first
func (s *Service) List(ctx context.Context, search string) ([]*Video, error) {
	return s.repo.List(ctx, search, listLimit)
}

// ListMine returns the actor's own videos, hidden included
func (s *Service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]*Video, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// ListSaved returns the actor's saved videos
func (s *Service) ListSaved(ctx context.Context, userID uuid.UUID) ([]*Video, error) {
	return s.repo.ListSavedByUser(ctx, userID)
}

// Create uploads video metadata. Flagged accounts are rejected.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateVideoRequest) (*Video, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil || owner == nil {
		return nil, ErrNotAllowed
	}
	if owner.IsFlagged() {
		return nil, ErrAccountFlagged
	}

	length := req.Length
	if length == "" {
		length = "0:00"
	}
	channelName := owner.Name
	if channelName == "" {
		channelName = req.ChannelName
	}

	now := time.Now()
	v := &Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Src:         req.Src,
		Length:      length,
		Thumb:       req.Thumb,
		ChannelName: channelName,
		AvatarURL:   owner.AvatarURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Get returns a single video
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVideoNotFound
	}
	return v, nil
}

// Update applies a partial edit; owner or admin only
func (s *Service) Update(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req *UpdateVideoRequest) (*Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVideoNotFound
	}
	if !v.CanEdit(actorID, actorRole) {
		return nil, ErrNotAllowed
	}

	if req.Title != nil {
		v.Title = *req.Title
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.Src != nil {
		v.Src = *req.Src
	}
	if req.Length != nil {
		v.Length = *req.Length
	}
	if req.Thumb != nil {
		v.Thumb = *req.Thumb
	}
	if req.ChannelName != nil {
		v.ChannelName = *req.ChannelName
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete removes a video; owner or admin only
func (s *Service) Delete(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return ErrVideoNotFound
	}
	if !v.CanEdit(actorID, actorRole) {
		return ErrNotAllowed
	}

	return s.repo.Delete(ctx, id)
}

// Like toggles the actor's like on a video
func (s *Service) Like(ctx context.Context, actorID, videoID uuid.UUID) (*LikeResponse, error) {
	v, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVideoNotFound
	}

	liked, count, err := s.repo.ToggleLike(ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}
	return &LikeResponse{Liked: liked, LikesCount: count}, nil
}

// Save toggles the actor's save on a video
func (s *Service) Save(ctx context.Context, actorID, videoID uuid.UUID) (*SaveResponse, error) {
	v, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVideoNotFound
	}

	saved, err := s.repo.ToggleSave(ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}
	return &SaveResponse{Saved: saved}, nil
}

// Watch records a watch event; the view counter moves once per account
func (s *Service) Watch(ctx context.Context, actorID, videoID uuid.UUID) (*WatchResponse, error) {
	v, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVideoNotFound
	}

	views, err := s.repo.RecordWatch(ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}
	return &WatchResponse{Watched: true, Views: views}, nil
}
