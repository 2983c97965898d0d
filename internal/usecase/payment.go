package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusbites/canteen/internal/adapter/stripegw"
	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/domain/repository"
	"github.com/campusbites/canteen/internal/notify"
)

// PaymentUseCase reconciles the three payment paths. Cash records intent,
// wallet debits atomically, online rides the gateway's checkout session with
// idempotent completion.
type PaymentUseCase struct {
	payments  repository.PaymentRepository
	orders    repository.OrderRepository
	gateway   stripegw.Gateway
	publisher notify.Publisher
	logger    *slog.Logger

	newReference func() string
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(payments repository.PaymentRepository, orders repository.OrderRepository, gateway stripegw.Gateway, publisher notify.Publisher, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		payments:     payments,
		orders:       orders,
		gateway:      gateway,
		publisher:    publisher,
		logger:       logger,
		newReference: uuid.NewString,
	}
}

// PayCash records the intent to pay at the counter. No funds move; the
// order becomes visible to the kitchen as pending.
func (u *PaymentUseCase) PayCash(ctx context.Context, userID int64, token string) (*model.Order, error) {
	order, err := u.ownedOrder(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, domainErrors.ErrAlreadyPaid
	}

	wasHidden := order.Status == model.OrderStatusPaymentPending
	if wasHidden {
		if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusPending); err != nil {
			return nil, err
		}
		order.Status = model.OrderStatusPending
	}

	if _, err := u.payments.Create(ctx, &model.Payment{
		OrderID: order.ID,
		Amount:  order.TotalAmount,
		Method:  model.PaymentMethodCash,
		Status:  model.PaymentStatusPending,
	}); err != nil {
		return nil, err
	}

	u.fanOut(ctx, order, wasHidden)
	return order, nil
}

// PayWallet debits the caller's wallet and confirms the order in a single
// transaction. Balances never go negative.
func (u *PaymentUseCase) PayWallet(ctx context.Context, userID int64, token string) (*model.Order, error) {
	order, err := u.ownedOrder(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	wasHidden := order.Status == model.OrderStatusPaymentPending

	if err := u.payments.PayWithWallet(ctx, order, u.newReference()); err != nil {
		return nil, err
	}

	u.fanOut(ctx, order, wasHidden)
	return order, nil
}

// StartOnline opens a hosted checkout session and records the pending
// payment keyed by the session id.
func (u *PaymentUseCase) StartOnline(ctx context.Context, userID int64, token string) (*stripegw.CheckoutSession, error) {
	order, err := u.ownedOrder(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, domainErrors.ErrAlreadyPaid
	}

	session, err := u.gateway.CreateSession(ctx, order)
	if err != nil {
		return nil, err
	}
	if _, err := u.payments.AttachGatewaySession(ctx, order, session.ID); err != nil {
		return nil, err
	}
	return session, nil
}

// ConfirmCallback handles the user-facing success redirect. The session is
// re-fetched from the gateway; only a paid session confirms the order.
func (u *PaymentUseCase) ConfirmCallback(ctx context.Context, userID int64, token, sessionID string) (*model.Order, error) {
	order, err := u.ownedOrder(ctx, userID, token)
	if err != nil {
		return nil, err
	}

	status, err := u.gateway.FetchSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !status.Paid {
		return nil, domainErrors.ErrNotFound
	}

	if _, _, err := u.completeSession(ctx, sessionID, status.TransactionID, status.Raw); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, order.ID)
}

// HandleWebhook processes a gateway event. Malformed payloads surface
// stripegw.ErrMalformedEvent; duplicate deliveries are success no-ops.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := u.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}
	if event.SessionID == "" || !event.Completed {
		return nil
	}

	_, _, err = u.completeSession(ctx, event.SessionID, event.TransactionID, event.Raw)
	if errors.Is(err, domainErrors.ErrNotFound) {
		// not a session we created, nothing to reconcile
		u.logger.Warn("webhook for unknown gateway session", "session", event.SessionID)
		return nil
	}
	return err
}

// CompleteSession converges any completion path on the idempotent confirm.
func (u *PaymentUseCase) CompleteSession(ctx context.Context, sessionID, transactionID string, response []byte) (bool, error) {
	_, created, err := u.completeSession(ctx, sessionID, transactionID, response)
	return created, err
}

// FailSession marks a pending gateway payment failed.
func (u *PaymentUseCase) FailSession(ctx context.Context, sessionID, reason string) error {
	return u.payments.FailGatewaySession(ctx, sessionID, reason)
}

// PendingSessions lists stale pending gateway payments for reconciliation.
func (u *PaymentUseCase) PendingSessions(ctx context.Context, olderThan time.Duration, limit int) ([]model.Payment, error) {
	return u.payments.ListPendingGatewaySessions(ctx, olderThan, limit)
}

// ListByOrder returns the payment attempts for the caller's order.
func (u *PaymentUseCase) ListByOrder(ctx context.Context, userID int64, token string) ([]model.Payment, error) {
	order, err := u.ownedOrder(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	return u.payments.ListByOrder(ctx, order.ID)
}

func (u *PaymentUseCase) completeSession(ctx context.Context, sessionID, transactionID string, response []byte) (int64, bool, error) {
	orderID, created, err := u.payments.CompleteGatewaySession(ctx, sessionID, transactionID, response)
	if err != nil {
		return 0, false, err
	}
	if created {
		if order, err := u.orders.GetByID(ctx, orderID); err == nil {
			u.fanOut(ctx, order, true)
		} else {
			u.logger.Error("confirmed order reload failed", "order_id", orderID, "error", err)
		}
	}
	return orderID, created, nil
}

func (u *PaymentUseCase) ownedOrder(ctx context.Context, userID int64, token string) (*model.Order, error) {
	order, err := u.orders.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

func (u *PaymentUseCase) fanOut(ctx context.Context, order *model.Order, newOrder bool) {
	if order.Status == model.OrderStatusPaymentPending {
		return
	}
	if err := u.publisher.PublishOrder(ctx, notify.NewOrderEvent(order, newOrder)); err != nil {
		u.logger.Error("order event publish failed", "order", order.Token, "error", err)
	}
}
