package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
)

const feedbackColumns = `id, user_id, subject, message, rating, status, admin_response, created_at, updated_at`

func (r *feedbackRepository) Create(ctx context.Context, fb *model.Feedback) (*model.Feedback, error) {
	const query = `INSERT INTO feedback (user_id, subject, message, rating)
                   VALUES ($1,$2,$3,$4) RETURNING id, status, created_at, updated_at`
	out := *fb
	err := r.storage.pool.QueryRow(ctx, query, fb.UserID, fb.Subject, fb.Message, fb.Rating).
		Scan(&out.ID, &out.Status, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, id int64) (*model.Feedback, error) {
	var f model.Feedback
	err := r.storage.pool.QueryRow(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE id=$1`, id,
	).Scan(&f.ID, &f.UserID, &f.Subject, &f.Message, &f.Rating, &f.Status, &f.AdminResponse, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *feedbackRepository) ListByUser(ctx context.Context, userID int64) ([]model.Feedback, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Feedback
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Subject, &f.Message, &f.Rating, &f.Status,
			&f.AdminResponse, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *feedbackRepository) Update(ctx context.Context, fb *model.Feedback) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE feedback SET status=$1, admin_response=$2, updated_at=NOW() WHERE id=$3`,
		fb.Status, fb.AdminResponse, fb.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
