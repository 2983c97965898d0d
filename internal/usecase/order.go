package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/campusbites/canteen/internal/config"
	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/domain/repository"
	"github.com/campusbites/canteen/internal/notify"
)

const (
	maxItemQuantity     = 20
	minScheduleLeadTime = 30 * time.Minute
)

// OrderItemInput is one requested line at checkout.
type OrderItemInput struct {
	MenuItemID int64
	Quantity   int
}

// PlaceOrderInput is a checkout request.
type PlaceOrderInput struct {
	Items               []OrderItemInput
	PaymentMethod       model.PaymentMethod
	SpecialInstructions string
	DeliveryType        model.DeliveryType
	DeliveryLocation    string
	ScheduledFor        *time.Time
}

// OrderUseCase owns checkout, the status lifecycle and cancellation.
type OrderUseCase struct {
	orders    repository.OrderRepository
	menu      repository.MenuRepository
	publisher notify.Publisher
	cfg       *config.Config
	logger    *slog.Logger

	now func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, menu repository.MenuRepository, publisher notify.Publisher, cfg *config.Config, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		menu:      menu,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Place validates a checkout request, snapshots item names and prices and
// creates the order. Online orders start in payment_pending and stay hidden
// from the kitchen until paid.
func (u *OrderUseCase) Place(ctx context.Context, userID int64, in PlaceOrderInput) (*model.Order, error) {
	if u.cfg.MaintenanceMode {
		return nil, domainErrors.ErrMaintenanceMode
	}
	if len(in.Items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	deliveryType := in.DeliveryType
	if deliveryType == "" {
		deliveryType = model.DeliveryPickup
	}
	location := strings.TrimSpace(in.DeliveryLocation)
	if deliveryType != model.DeliveryPickup && location == "" {
		return nil, domainErrors.ErrMissingLocation
	}
	if in.ScheduledFor != nil && in.ScheduledFor.Before(u.now().Add(minScheduleLeadTime)) {
		return nil, domainErrors.ErrInvalidSchedule
	}

	ids := make([]int64, 0, len(in.Items))
	for _, line := range in.Items {
		ids = append(ids, line.MenuItemID)
	}
	menuItems, err := u.menu.GetItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]model.MenuItem, len(menuItems))
	for _, item := range menuItems {
		byID[item.ID] = item
	}

	var orderItems []model.OrderItem
	var total float64
	for _, line := range in.Items {
		item, ok := byID[line.MenuItemID]
		if !ok || !item.IsAvailable {
			// unknown or withdrawn items are dropped, not fatal
			continue
		}
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		if qty > maxItemQuantity {
			qty = maxItemQuantity
		}
		id := item.ID
		orderItems = append(orderItems, model.OrderItem{
			MenuItemID: &id,
			ItemName:   item.Name,
			Price:      item.Price,
			Quantity:   qty,
		})
		total += item.Price * float64(qty)
	}
	if len(orderItems) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	var deliveryFee float64
	if deliveryType != model.DeliveryPickup {
		deliveryFee = u.cfg.DeliveryFee
		total += deliveryFee
	}

	status := model.OrderStatusPending
	if in.PaymentMethod == model.PaymentMethodOnline {
		status = model.OrderStatusPaymentPending
	}

	order, err := u.orders.Create(ctx, &model.Order{
		UserID:              userID,
		Status:              status,
		PaymentMethod:       in.PaymentMethod,
		TotalAmount:         total,
		SpecialInstructions: in.SpecialInstructions,
		DeliveryType:        deliveryType,
		DeliveryLocation:    location,
		DeliveryFee:         deliveryFee,
		ScheduledFor:        in.ScheduledFor,
		Items:               orderItems,
	})
	if err != nil {
		return nil, err
	}

	if order.Status != model.OrderStatusPaymentPending {
		u.fanOut(ctx, order, true)
	}
	return order, nil
}

// Get returns the order for its owner.
func (u *OrderUseCase) Get(ctx context.Context, userID int64, token string) (*model.Order, error) {
	order, err := u.orders.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListByUser returns the caller's order history, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.orders.ListByUser(ctx, userID, limit, offset)
}

// ListActive returns the kitchen's working set, oldest first.
func (u *OrderUseCase) ListActive(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListActive(ctx)
}

// Transition advances an order along the lifecycle. Illegal edges are
// refused with ErrInvalidTransition and no mutation.
func (u *OrderUseCase) Transition(ctx context.Context, token string, target model.OrderStatus) (*model.Order, error) {
	order, err := u.orders.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !order.Transition(target) {
		return nil, domainErrors.ErrInvalidTransition
	}
	if err := u.orders.UpdateStatus(ctx, order.ID, target); err != nil {
		return nil, err
	}
	u.fanOut(ctx, order, false)
	return order, nil
}

// Cancel cancels the caller's order, refunding wallet payments atomically.
func (u *OrderUseCase) Cancel(ctx context.Context, userID int64, token string) (*model.Order, bool, error) {
	order, err := u.orders.GetByToken(ctx, token)
	if err != nil {
		return nil, false, err
	}
	if order.UserID != userID {
		return nil, false, domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusPending && order.Status != model.OrderStatusConfirmed {
		return nil, false, domainErrors.ErrNotCancellable
	}
	refunded, err := u.orders.Cancel(ctx, order)
	if err != nil {
		return nil, false, err
	}
	order.Status = model.OrderStatusCancelled
	u.fanOut(ctx, order, false)
	return order, refunded, nil
}

func (u *OrderUseCase) fanOut(ctx context.Context, order *model.Order, newOrder bool) {
	if order.Status == model.OrderStatusPaymentPending {
		return
	}
	if err := u.publisher.PublishOrder(ctx, notify.NewOrderEvent(order, newOrder)); err != nil {
		u.logger.Error("order event publish failed", "order", order.Token, "error", err)
	}
}
