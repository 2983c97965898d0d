package model

import "time"

// FeedbackStatus tracks triage of a complaint or suggestion.
type FeedbackStatus string

const (
	FeedbackOpen       FeedbackStatus = "open"
	FeedbackInProgress FeedbackStatus = "in_progress"
	FeedbackResolved   FeedbackStatus = "resolved"
)

var feedbackTransitions = map[FeedbackStatus][]FeedbackStatus{
	FeedbackOpen:       {FeedbackInProgress},
	FeedbackInProgress: {FeedbackResolved},
	FeedbackResolved:   {},
}

// Feedback is a user complaint, suggestion or rating.
type Feedback struct {
	ID            int64
	UserID        int64
	Subject       string
	Message       string
	Rating        int
	Status        FeedbackStatus
	AdminResponse string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanTransition reports whether triage may advance to target.
func (f *Feedback) CanTransition(target FeedbackStatus) bool {
	for _, next := range feedbackTransitions[f.Status] {
		if next == target {
			return true
		}
	}
	return false
}
