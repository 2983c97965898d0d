package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/domain/repository"
)

// FeedbackUseCase collects complaints and suggestions and lets staff triage
// them.
type FeedbackUseCase struct {
	feedback repository.FeedbackRepository
	users    repository.UserRepository
}

// NewFeedbackUseCase constructs FeedbackUseCase.
func NewFeedbackUseCase(feedback repository.FeedbackRepository, users repository.UserRepository) *FeedbackUseCase {
	return &FeedbackUseCase{feedback: feedback, users: users}
}

// Submit stores new feedback in open state.
func (u *FeedbackUseCase) Submit(ctx context.Context, userID int64, subject, message string, rating int) (*model.Feedback, error) {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" || message == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	if rating < 0 || rating > 5 {
		rating = 0
	}
	return u.feedback.Create(ctx, &model.Feedback{
		UserID:  userID,
		Subject: subject,
		Message: message,
		Rating:  rating,
		Status:  model.FeedbackOpen,
	})
}

// ListByUser returns the caller's feedback history.
func (u *FeedbackUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Feedback, error) {
	return u.feedback.ListByUser(ctx, userID)
}

// Triage advances feedback status and optionally attaches a staff response.
// Only staff may call it.
func (u *FeedbackUseCase) Triage(ctx context.Context, staffID, feedbackID int64, target model.FeedbackStatus, response string) (*model.Feedback, error) {
	staff, err := u.users.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !staff.Staff() {
		return nil, domainErrors.ErrForbidden
	}

	fb, err := u.feedback.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if !fb.CanTransition(target) {
		return nil, domainErrors.ErrInvalidTransition
	}
	fb.Status = target
	if response != "" {
		fb.AdminResponse = response
	}
	if err := u.feedback.Update(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}
