package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/core/ports"
)

// SubmissionRepo implements ports.SubmissionRepository.
type SubmissionRepo struct {
	db *DB
}

func NewSubmissionRepo(db *DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

func (r *SubmissionRepo) Create(ctx context.Context, sub *domain.Submission) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO submissions (id, spot_id, name, lat, lng, type, memo, photos, status, submitter_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, sub.ID, sub.SpotID, sub.Name, sub.Lat, sub.Lng, sub.Type, sub.Memo, sub.Photos, sub.Status, nullable(sub.SubmitterID), sub.CreatedAt)
	return err
}

func (r *SubmissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	sub := &domain.Submission{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, spot_id, name, lat, lng, type, memo, photos, status, COALESCE(submitter_id, ''), created_at
		FROM submissions WHERE id = $1
	`, id).Scan(&sub.ID, &sub.SpotID, &sub.Name, &sub.Lat, &sub.Lng, &sub.Type,
		&sub.Memo, &sub.Photos, &sub.Status, &sub.SubmitterID, &sub.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *SubmissionRepo) ListByStatus(ctx context.Context, status domain.SubmissionStatus, limit, offset int) ([]domain.Submission, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, spot_id, name, lat, lng, type, memo, photos, status, COALESCE(submitter_id, ''), created_at
		FROM submissions WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		var sub domain.Submission
		if err := rows.Scan(&sub.ID, &sub.SpotID, &sub.Name, &sub.Lat, &sub.Lng, &sub.Type,
			&sub.Memo, &sub.Photos, &sub.Status, &sub.SubmitterID, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *SubmissionRepo) UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE submissions SET status = $1 WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
