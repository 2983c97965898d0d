package repository

import (
	"context"

	"github.com/campusbites/canteen/internal/domain/model"
)

// FeedbackRepository stores complaints and suggestions.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *model.Feedback) (*model.Feedback, error)
	GetByID(ctx context.Context, id int64) (*model.Feedback, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Feedback, error)
	Update(ctx context.Context, fb *model.Feedback) error
}
