package dto

import "time"

// FeedbackRequest submits a complaint, suggestion or rating.
type FeedbackRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

// FeedbackTriageRequest advances triage with an optional staff response.
type FeedbackTriageRequest struct {
	Status   string `json:"status"`
	Response string `json:"response"`
}

// FeedbackResponse is one feedback entry with its triage state.
type FeedbackResponse struct {
	ID            int64     `json:"id"`
	Subject       string    `json:"subject"`
	Message       string    `json:"message"`
	Rating        int       `json:"rating,omitempty"`
	Status        string    `json:"status"`
	AdminResponse string    `json:"admin_response,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
