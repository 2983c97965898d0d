package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
)

const paymentColumns = `id, order_id, amount, method, status, transaction_id, gateway_session_id,
    gateway_response, failure_reason, refunded_at, created_at`

func scanPayments(rows pgx.Rows) ([]model.Payment, error) {
	defer rows.Close()
	var result []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.TransactionID,
			&p.GatewaySessionID, &p.GatewayResponse, &p.FailureReason, &p.RefundedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	const query = `INSERT INTO payments (order_id, amount, method, status, transaction_id, gateway_session_id, gateway_response)
                   VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at`
	out := *payment
	err := r.storage.pool.QueryRow(ctx, query,
		payment.OrderID, payment.Amount, payment.Method, payment.Status,
		payment.TransactionID, payment.GatewaySessionID, payment.GatewayResponse,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id=$1 ORDER BY created_at DESC`, orderID)
	if err != nil {
		return nil, err
	}
	return scanPayments(rows)
}

func (r *paymentRepository) PayWithWallet(ctx context.Context, order *model.Order, reference string) error {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var status model.OrderStatus
		var isPaid bool
		if err := tx.QueryRow(ctx,
			`SELECT status, is_paid FROM orders WHERE id=$1 FOR UPDATE`, order.ID,
		).Scan(&status, &isPaid); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if isPaid {
			return domainErrors.ErrAlreadyPaid
		}
		locked := model.Order{Status: status}
		if !locked.CanTransition(model.OrderStatusConfirmed) {
			return domainErrors.ErrInvalidTransition
		}

		var balance float64
		if err := tx.QueryRow(ctx,
			`SELECT wallet_balance FROM users WHERE id=$1 FOR UPDATE`, order.UserID,
		).Scan(&balance); err != nil {
			return err
		}
		if balance < order.TotalAmount {
			return domainErrors.ErrInsufficientBalance
		}

		if _, err := tx.Exec(ctx,
			`UPDATE users SET wallet_balance = wallet_balance - $1 WHERE id=$2`,
			order.TotalAmount, order.UserID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO wallet_transactions (user_id, amount, type, description, reference_id)
             VALUES ($1, $2, 'debit', $3, $4)`,
			order.UserID, order.TotalAmount, "Payment for order "+order.Token, reference); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO payments (order_id, amount, method, status, transaction_id, gateway_response)
             VALUES ($1, $2, 'wallet', 'completed', $3, $4)`,
			order.ID, order.TotalAmount, reference,
			[]byte(`{"source":"canteen_wallet","ref":"`+reference+`"}`)); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE orders SET status='confirmed', is_paid=TRUE, updated_at=NOW() WHERE id=$1`, order.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	order.Status = model.OrderStatusConfirmed
	order.IsPaid = true
	return nil
}

func (r *paymentRepository) AttachGatewaySession(ctx context.Context, order *model.Order, sessionID string) (*model.Payment, error) {
	const query = `INSERT INTO payments (order_id, amount, method, status, gateway_session_id)
                   VALUES ($1, $2, 'online', 'pending', $3)
                   ON CONFLICT (gateway_session_id) DO NOTHING
                   RETURNING id, created_at`
	p := model.Payment{
		OrderID:          order.ID,
		Amount:           order.TotalAmount,
		Method:           model.PaymentMethodOnline,
		Status:           model.PaymentStatusPending,
		GatewaySessionID: &sessionID,
	}
	err := r.storage.pool.QueryRow(ctx, query, order.ID, order.TotalAmount, sessionID).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &p, nil
}

// CompleteGatewaySession converges the success callback, the webhook and the
// reconciliation poller on a single idempotent confirm keyed by session id.
func (r *paymentRepository) CompleteGatewaySession(ctx context.Context, sessionID, transactionID string, response []byte) (int64, bool, error) {
	created := false
	var affectedOrder int64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var paymentID, orderID int64
		var status model.PaymentStatus
		err := tx.QueryRow(ctx,
			`SELECT id, order_id, status FROM payments WHERE gateway_session_id=$1 FOR UPDATE`, sessionID,
		).Scan(&paymentID, &orderID, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		affectedOrder = orderID
		if status == model.PaymentStatusCompleted {
			return nil // duplicate delivery, success no-op
		}

		var orderStatus model.OrderStatus
		var isPaid bool
		if err := tx.QueryRow(ctx,
			`SELECT status, is_paid FROM orders WHERE id=$1 FOR UPDATE`, orderID,
		).Scan(&orderStatus, &isPaid); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE payments SET status='completed', transaction_id=$1, gateway_response=$2 WHERE id=$3`,
			transactionID, response, paymentID); err != nil {
			return err
		}

		if !isPaid {
			locked := model.Order{Status: orderStatus}
			if locked.CanTransition(model.OrderStatusConfirmed) {
				if _, err := tx.Exec(ctx,
					`UPDATE orders SET status='confirmed', is_paid=TRUE, updated_at=NOW() WHERE id=$1`, orderID); err != nil {
					return err
				}
			} else {
				if _, err := tx.Exec(ctx,
					`UPDATE orders SET is_paid=TRUE, updated_at=NOW() WHERE id=$1`, orderID); err != nil {
					return err
				}
			}
		}
		created = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return affectedOrder, created, nil
}

func (r *paymentRepository) FailGatewaySession(ctx context.Context, sessionID, reason string) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE payments SET status='failed', failure_reason=$1 WHERE gateway_session_id=$2 AND status='pending'`,
		reason, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *paymentRepository) ListPendingGatewaySessions(ctx context.Context, olderThan time.Duration, limit int) ([]model.Payment, error) {
	cutoff := time.Now().Add(-olderThan)
	rows, err := r.storage.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments
         WHERE status='pending' AND gateway_session_id IS NOT NULL AND created_at < $1
         ORDER BY created_at
         LIMIT $2`, cutoff, limit)
	if err != nil {
		return nil, err
	}
	return scanPayments(rows)
}
