package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines video data access interface
type Repository interface {
	Create(ctx context.Context, v *Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*Video, error)
	// List returns visible videos, newest first, optionally filtered by title search
	List(ctx context.Context, search string, limit int) ([]*Video, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Video, error)
	Update(ctx context.Context, v *Video) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Moderation suppression
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error
	SetHiddenByOwner(ctx context.Context, ownerID uuid.UUID, hidden bool) error
	ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)

	// Profile sync from the account domain
	SyncOwnerProfile(ctx context.Context, ownerID uuid.UUID, channelName, avatarURL, headerURL string) error

	// Engagement
	ToggleLike(ctx context.Context, videoID, userID uuid.UUID) (liked bool, likesCount int, err error)
	ToggleSave(ctx context.Context, videoID, userID uuid.UUID) (saved bool, err error)
	// RecordWatch registers a watch event; views increment only on the first
	// watch per account
	RecordWatch(ctx context.Context, videoID, userID uuid.UUID) (views int, err error)
	ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]*Video, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new video repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const videoColumns = `v.id, v.owner_id, v.title, v.description, v.src, v.length, v.thumb,
	       v.channel_name, v.avatar_url, v.hidden, v.views, v.created_at, v.updated_at,
	       (SELECT COUNT(*) FROM video_likes l WHERE l.video_id = v.id) AS likes_count`

func (r *repository) Create(ctx context.Context, v *Video) error {
	query := `
		INSERT INTO videos (id, owner_id, title, description, src, length, thumb,
		                    channel_name, avatar_url, hidden, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.OwnerID,
		v.Title,
		v.Description,
		v.Src,
		v.Length,
		v.Thumb,
		v.ChannelName,
		v.AvatarURL,
		v.Hidden,
		v.Views,
		v.CreatedAt,
		v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("video repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos v WHERE v.id = $1`
	var v Video
	err := r.db.GetContext(ctx, &v, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *repository) List(ctx context.Context, search string, limit int) ([]*Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos v WHERE v.hidden = FALSE`
	args := []interface{}{}

	if search != "" {
		query += ` AND v.title ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	query += fmt.Sprintf(` ORDER BY v.created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	videos := []*Video{}
	err := r.db.SelectContext(ctx, &videos, query, args...)
	return videos, err
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos v WHERE v.owner_id = $1 ORDER BY v.created_at DESC`
	videos := []*Video{}
	err := r.db.SelectContext(ctx, &videos, query, ownerID)
	return videos, err
}

func (r *repository) Update(ctx context.Context, v *Video) error {
	query := `
		UPDATE videos
		SET title = $2, description = $3, src = $4, length = $5, thumb = $6,
		    channel_name = $7, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.Title,
		v.Description,
		v.Src,
		v.Length,
		v.Thumb,
		v.ChannelName,
	)
	if err != nil {
		return fmt.Errorf("video repository update: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	return err
}

func (r *repository) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	query := `UPDATE videos SET hidden = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, hidden)
	return err
}

func (r *repository) SetHiddenByOwner(ctx context.Context, ownerID uuid.UUID, hidden bool) error {
	query := `UPDATE videos SET hidden = $2, updated_at = NOW() WHERE owner_id = $1`
	_, err := r.db.ExecContext(ctx, query, ownerID, hidden)
	return err
}

func (r *repository) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM videos WHERE owner_id = $1`, ownerID)
	return ids, err
}

func (r *repository) SyncOwnerProfile(ctx context.Context, ownerID uuid.UUID, channelName, avatarURL, headerURL string) error {
	query := `UPDATE videos SET channel_name = $2, avatar_url = $3, updated_at = NOW() WHERE owner_id = $1`
	_, err := r.db.ExecContext(ctx, query, ownerID, channelName, avatarURL)
	return err
}

func (r *repository) ToggleLike(ctx context.Context, videoID, userID uuid.UUID) (bool, int, error) {
	liked := false

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM video_likes WHERE video_id = $1 AND user_id = $2`,
		videoID, userID,
	)
	if err != nil {
		return false, 0, fmt.Errorf("video repository toggle like: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO video_likes (video_id, user_id, created_at) VALUES ($1, $2, NOW())
			 ON CONFLICT (video_id, user_id) DO NOTHING`,
			videoID, userID,
		)
		if err != nil {
			return false, 0, fmt.Errorf("video repository toggle like: %w", err)
		}
		liked = true
	}

	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM video_likes WHERE video_id = $1`, videoID,
	); err != nil {
		return liked, 0, err
	}
	return liked, count, nil
}

func (r *repository) ToggleSave(ctx context.Context, videoID, userID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_videos WHERE video_id = $1 AND user_id = $2`,
		videoID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("video repository toggle save: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO saved_videos (video_id, user_id, created_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (video_id, user_id) DO NOTHING`,
		videoID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("video repository toggle save: %w", err)
	}
	return true, nil
}

func (r *repository) RecordWatch(ctx context.Context, videoID, userID uuid.UUID) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO watch_history (video_id, user_id, created_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (video_id, user_id) DO NOTHING`,
		videoID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("video repository record watch: %w", err)
	}

	// First watch by this account bumps the view counter
	if n, _ := res.RowsAffected(); n > 0 {
		if _, err := r.db.ExecContext(ctx,
			`UPDATE videos SET views = views + 1 WHERE id = $1`, videoID,
		); err != nil {
			return 0, fmt.Errorf("video repository record watch: %w", err)
		}
	}

	var views int
	if err := r.db.GetContext(ctx, &views,
		`SELECT views FROM videos WHERE id = $1`, videoID,
	); err != nil {
		return 0, err
	}
	return views, nil
}

func (r *repository) ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]*Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos v
		JOIN saved_videos s ON s.video_id = v.id
		WHERE s.user_id = $1 AND v.hidden = FALSE
		ORDER BY s.created_at DESC
	`
	videos := []*Video{}
	err := r.db.SelectContext(ctx, &videos, query, userID)
	return videos, err
}
