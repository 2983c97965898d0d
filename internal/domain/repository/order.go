package repository

import (
	"context"

	"github.com/campusbites/canteen/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create inserts the order together with its item snapshots and assigns
	// a unique token.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByToken(ctx context.Context, token string) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Order, error)
	// ListActive returns orders the kitchen cares about, oldest first.
	ListActive(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	// Cancel marks the order cancelled and, for wallet-paid orders, credits
	// the refund back inside the same transaction. Reports whether a refund
	// was issued.
	Cancel(ctx context.Context, order *model.Order) (bool, error)
}
