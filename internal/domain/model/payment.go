package model

import "time"

// PaymentStatus describes one payment attempt's outcome.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment records one payment attempt against an order. GatewaySessionID is
// the idempotency key for gateway-driven attempts and is unique across all
// payments.
type Payment struct {
	ID               int64
	OrderID          int64
	Amount           float64
	Method           PaymentMethod
	Status           PaymentStatus
	TransactionID    string
	GatewaySessionID *string
	GatewayResponse  []byte
	FailureReason    string
	RefundedAt       *time.Time
	CreatedAt        time.Time
}

// Successful reports whether the attempt completed.
func (p *Payment) Successful() bool {
	return p.Status == PaymentStatusCompleted
}
