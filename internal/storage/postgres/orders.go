package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
)

const orderColumns = `id, user_id, token, status, payment_method, is_paid, total_amount,
    special_instructions, delivery_type, delivery_location, delivery_fee, scheduled_for, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Token, &o.Status, &o.PaymentMethod, &o.IsPaid, &o.TotalAmount,
		&o.SpecialInstructions, &o.DeliveryType, &o.DeliveryLocation, &o.DeliveryFee,
		&o.ScheduledFor, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	out := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		token, err := r.pickToken(ctx, tx)
		if err != nil {
			return err
		}

		const insertOrder = `INSERT INTO orders
            (user_id, token, status, payment_method, total_amount, special_instructions,
             delivery_type, delivery_location, delivery_fee, scheduled_for)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
            RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertOrder,
			order.UserID, token, order.Status, order.PaymentMethod, order.TotalAmount,
			order.SpecialInstructions, order.DeliveryType, order.DeliveryLocation,
			order.DeliveryFee, order.ScheduledFor,
		).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		out.Token = token

		const insertItem = `INSERT INTO order_items (order_id, menu_item_id, item_name, price, quantity)
                            VALUES ($1,$2,$3,$4,$5) RETURNING id`
		out.Items = make([]model.OrderItem, 0, len(order.Items))
		for _, item := range order.Items {
			item.OrderID = out.ID
			if err := tx.QueryRow(ctx, insertItem,
				out.ID, item.MenuItemID, item.ItemName, item.Price, item.Quantity,
			).Scan(&item.ID); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
			out.Items = append(out.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// pickToken finds an unused order token, retrying short candidates before
// falling back to a long one. The unique constraint remains the backstop for
// a concurrent insert of the same candidate.
func (r *orderRepository) pickToken(ctx context.Context, tx pgx.Tx) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		token := generateToken()
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE token=$1)`, token).Scan(&exists); err != nil {
			return "", err
		}
		if !exists {
			return token, nil
		}
	}
	return fallbackToken(), nil
}

func (r *orderRepository) GetByToken(ctx context.Context, token string) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE token=$1`, token))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*model.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*model.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.collectOrders(ctx, rows)
}

func (r *orderRepository) ListActive(ctx context.Context) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
         WHERE status IN ('pending','confirmed','preparing','ready','out_for_delivery')
         ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	return r.collectOrders(ctx, rows)
}

func (r *orderRepository) collectOrders(ctx context.Context, rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()
	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Token, &o.Status, &o.PaymentMethod, &o.IsPaid, &o.TotalAmount,
			&o.SpecialInstructions, &o.DeliveryType, &o.DeliveryLocation, &o.DeliveryFee,
			&o.ScheduledFor, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*model.Order, len(result))
	for i := range result {
		refs[i] = &result[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*model.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := r.storage.pool.Query(ctx,
		`SELECT id, order_id, menu_item_id, item_name, price, quantity
         FROM order_items WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.ItemName, &it.Price, &it.Quantity); err != nil {
			return err
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Cancel(ctx context.Context, order *model.Order) (bool, error) {
	refunded := false
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var status model.OrderStatus
		if err := tx.QueryRow(ctx,
			`SELECT status FROM orders WHERE id=$1 FOR UPDATE`, order.ID,
		).Scan(&status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		locked := model.Order{Status: status}
		if !locked.CanTransition(model.OrderStatusCancelled) {
			return domainErrors.ErrNotCancellable
		}

		if order.IsPaid && order.PaymentMethod == model.PaymentMethodWallet {
			var balance float64
			if err := tx.QueryRow(ctx,
				`SELECT wallet_balance FROM users WHERE id=$1 FOR UPDATE`, order.UserID,
			).Scan(&balance); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				`UPDATE users SET wallet_balance = wallet_balance + $1 WHERE id=$2`,
				order.TotalAmount, order.UserID); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO wallet_transactions (user_id, amount, type, description)
                 VALUES ($1, $2, 'credit', $3)`,
				order.UserID, order.TotalAmount, "Refund for cancelled order "+order.Token); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				`UPDATE payments SET status='refunded', refunded_at=NOW()
                 WHERE order_id=$1 AND method='wallet' AND status='completed'`, order.ID); err != nil {
				return err
			}
			refunded = true
		}

		if _, err := tx.Exec(ctx,
			`UPDATE orders SET status='cancelled', updated_at=NOW() WHERE id=$1`, order.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	order.Status = model.OrderStatusCancelled
	return refunded, nil
}
