package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/test"
)

func feedbackFixture() (*FeedbackUseCase, *test.FeedbackRepositoryStub, *test.UserRepositoryStub) {
	users := test.NewUserRepositoryStub()
	users.ByID[1] = &model.User{ID: 1, Login: "student", Role: model.RoleStudent}
	users.ByID[2] = &model.User{ID: 2, Login: "chef", Role: model.RoleKitchen}
	repo := &test.FeedbackRepositoryStub{}
	return NewFeedbackUseCase(repo, users), repo, users
}

func TestSubmitFeedback(t *testing.T) {
	uc, repo, _ := feedbackFixture()

	fb, err := uc.Submit(context.Background(), 1, "Cold food", "The dosa was cold.", 2)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if fb.Status != model.FeedbackOpen {
		t.Fatalf("unexpected status: %s", fb.Status)
	}
	if len(repo.Items) != 1 {
		t.Fatalf("expected stored feedback, got %d", len(repo.Items))
	}

	if _, err := uc.Submit(context.Background(), 1, " ", "", 0); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTriageRequiresStaff(t *testing.T) {
	uc, _, _ := feedbackFixture()
	fb, err := uc.Submit(context.Background(), 1, "Subject", "Message", 0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := uc.Triage(context.Background(), 1, fb.ID, model.FeedbackInProgress, ""); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	out, err := uc.Triage(context.Background(), 2, fb.ID, model.FeedbackInProgress, "Looking into it")
	if err != nil {
		t.Fatalf("triage: %v", err)
	}
	if out.Status != model.FeedbackInProgress || out.AdminResponse != "Looking into it" {
		t.Fatalf("unexpected feedback: %+v", out)
	}
}

func TestTriageRefusesSkippingStates(t *testing.T) {
	uc, _, _ := feedbackFixture()
	fb, err := uc.Submit(context.Background(), 1, "Subject", "Message", 0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := uc.Triage(context.Background(), 2, fb.ID, model.FeedbackResolved, ""); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
