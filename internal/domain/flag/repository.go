package flag

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines flag data access interface
type Repository interface {
	Create(ctx context.Context, f *Flag) error
	GetByID(ctx context.Context, id uuid.UUID) (*Flag, error)
	ListAll(ctx context.Context) ([]*Flag, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*Flag, error)
	// ListByTargets matches flags by target kind: video flags on any of
	// videoIDs, comment flags on any of commentIDs, account flags on
	// accountID. Newest first.
	ListByTargets(ctx context.Context, videoIDs, commentIDs []string, accountID string) ([]*Flag, error)
	Update(ctx context.Context, f *Flag) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new flag repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const flagColumns = `id, type, target_id, reason, message, created_by, status, outcome, resolution, appeal_message, created_at, updated_at`

func (r *repository) Create(ctx context.Context, f *Flag) error {
	query := `
		INSERT INTO flags (id, type, target_id, reason, message, created_by, status)
		VALUES (:id, :type, :target_id, :reason, :message, :created_by, :status)
		RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, f)
	if err != nil {
		return fmt.Errorf("failed to create flag: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&f.CreatedAt, &f.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan flag timestamps: %w", err)
		}
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Flag, error) {
	var f Flag
	query := `SELECT ` + flagColumns + ` FROM flags WHERE id = $1`

	err := r.db.GetContext(ctx, &f, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flag: %w", err)
	}

	return &f, nil
}

func (r *repository) ListAll(ctx context.Context) ([]*Flag, error) {
	flags := []*Flag{}
	query := `SELECT ` + flagColumns + ` FROM flags ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &flags, query); err != nil {
		return nil, fmt.Errorf("failed to list flags: %w", err)
	}

	return flags, nil
}

func (r *repository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*Flag, error) {
	flags := []*Flag{}
	query := `SELECT ` + flagColumns + ` FROM flags
		WHERE created_by = $1
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &flags, query, creatorID); err != nil {
		return nil, fmt.Errorf("failed to list flags by creator: %w", err)
	}

	return flags, nil
}

func (r *repository) ListByTargets(ctx context.Context, videoIDs, commentIDs []string, accountID string) ([]*Flag, error) {
	flags := []*Flag{}
	query := `SELECT ` + flagColumns + ` FROM flags
		WHERE (type = 'video' AND target_id = ANY($1))
		   OR (type = 'comment' AND target_id = ANY($2))
		   OR (type = 'account' AND target_id = $3)
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &flags, query, pq.Array(videoIDs), pq.Array(commentIDs), accountID); err != nil {
		return nil, fmt.Errorf("failed to list flags by targets: %w", err)
	}

	return flags, nil
}

func (r *repository) Update(ctx context.Context, f *Flag) error {
	query := `
		UPDATE flags
		SET status = :status,
		    outcome = :outcome,
		    resolution = :resolution,
		    appeal_message = :appeal_message,
		    updated_at = NOW()
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, f)
	if err != nil {
		return fmt.Errorf("failed to update flag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrFlagNotFound
	}

	return nil
}
