package dto

import "time"

// TopUpRequest credits the wallet.
type TopUpRequest struct {
	Amount float64 `json:"amount"`
}

// TopUpResponse returns the balance after the credit.
type TopUpResponse struct {
	Balance float64 `json:"balance"`
}

// WalletResponse summarizes the balance with this month's movement.
type WalletResponse struct {
	Balance      float64 `json:"balance"`
	MonthCredits float64 `json:"month_credits"`
	MonthDebits  float64 `json:"month_debits"`
}

// WalletTransactionResponse is one ledger entry.
type WalletTransactionResponse struct {
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	ReferenceID string    `json:"reference_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
