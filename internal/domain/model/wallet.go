package model

import "time"

// WalletTxnType marks a ledger entry direction.
type WalletTxnType string

const (
	WalletCredit WalletTxnType = "credit"
	WalletDebit  WalletTxnType = "debit"
)

// WalletTransaction is an append-only ledger entry. The running balance lives
// on the user row and is mutated only under a row lock.
type WalletTransaction struct {
	ID          int64
	UserID      int64
	Amount      float64
	Type        WalletTxnType
	Description string
	ReferenceID string
	CreatedAt   time.Time
}

// WalletSummary aggregates the current balance with this month's movement.
type WalletSummary struct {
	Balance      float64
	MonthCredits float64
	MonthDebits  float64
}
