package dto

import "time"

// CheckoutResponse points the client at the hosted payment page.
type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

// PaymentResponse is one payment attempt against an order.
type PaymentResponse struct {
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
