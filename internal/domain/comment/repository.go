package comment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines comment data access
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID) ([]*Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error
	ListIDsByAuthor(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error)
	SyncAuthorProfile(ctx context.Context, authorID uuid.UUID, authorName, avatarURL string) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates comment repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const commentColumns = `id, video_id, author_id, author_name, avatar_url, text, hidden, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (id, video_id, author_id, author_name, avatar_url, text, hidden)
		VALUES (:id, :video_id, :author_id, :author_name, :avatar_url, :text, :hidden)
		RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, c)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan comment timestamps: %w", err)
		}
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var c Comment
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	err := r.db.GetContext(ctx, &c, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) ListByVideo(ctx context.Context, videoID uuid.UUID) ([]*Comment, error) {
	comments := []*Comment{}
	query := `SELECT ` + commentColumns + ` FROM comments
		WHERE video_id = $1 AND hidden = FALSE
		ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &comments, query, videoID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (r *postgresRepository) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	query := `UPDATE comments SET hidden = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, hidden); err != nil {
		return fmt.Errorf("failed to set comment hidden: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListIDsByAuthor(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM comments WHERE author_id = $1`, authorID)
	return ids, err
}

func (r *postgresRepository) SyncAuthorProfile(ctx context.Context, authorID uuid.UUID, authorName, avatarURL string) error {
	query := `UPDATE comments SET author_name = $2, avatar_url = $3, updated_at = NOW() WHERE author_id = $1`
	if _, err := r.db.ExecContext(ctx, query, authorID, authorName, avatarURL); err != nil {
		return fmt.Errorf("failed to sync comment author profile: %w", err)
	}
	return nil
}
