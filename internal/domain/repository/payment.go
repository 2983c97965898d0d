package repository

import (
	"context"
	"time"

	"github.com/campusbites/canteen/internal/domain/model"
)

// PaymentRepository records payment attempts and owns the transactional
// reconciliation paths that flip an order to paid.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error)
	// PayWithWallet debits the user's balance under a row lock, appends a
	// ledger entry, records a completed payment and confirms the order, all
	// in one transaction.
	PayWithWallet(ctx context.Context, order *model.Order, reference string) error
	// AttachGatewaySession records a pending payment keyed by the gateway
	// checkout session id.
	AttachGatewaySession(ctx context.Context, order *model.Order, sessionID string) (*model.Payment, error)
	// CompleteGatewaySession performs the idempotent confirm for a session
	// and returns the id of the affected order. The first caller completes
	// the payment and confirms the order; later callers get created=false
	// and no state change.
	CompleteGatewaySession(ctx context.Context, sessionID, transactionID string, response []byte) (int64, bool, error)
	FailGatewaySession(ctx context.Context, sessionID, reason string) error
	// ListPendingGatewaySessions returns stale pending gateway payments for
	// the reconciliation poller.
	ListPendingGatewaySessions(ctx context.Context, olderThan time.Duration, limit int) ([]model.Payment, error)
}
