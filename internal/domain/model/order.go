package model

import "time"

// OrderStatus describes where an order sits in the kitchen lifecycle.
type OrderStatus string

const (
	OrderStatusPaymentPending OrderStatus = "payment_pending"
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCollected      OrderStatus = "collected"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// ValidTransitions is the adjacency table of the order state machine.
// Terminal states map to an empty set.
var ValidTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPaymentPending: {OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:          {OrderStatusOutForDelivery, OrderStatusCollected},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
	OrderStatusDelivered:      {},
	OrderStatusCollected:      {},
	OrderStatusCancelled:      {},
}

// PaymentMethod is the method chosen at checkout.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodOnline PaymentMethod = "online"
)

// DeliveryType describes where a finished order goes.
type DeliveryType string

const (
	DeliveryPickup    DeliveryType = "pickup"
	DeliveryClassroom DeliveryType = "classroom"
	DeliveryStaffroom DeliveryType = "staffroom"
)

// Order is a placed canteen order.
type Order struct {
	ID                  int64
	UserID              int64
	Token               string
	Status              OrderStatus
	PaymentMethod       PaymentMethod
	IsPaid              bool
	TotalAmount         float64
	SpecialInstructions string
	DeliveryType        DeliveryType
	DeliveryLocation    string
	DeliveryFee         float64
	ScheduledFor        *time.Time
	Items               []OrderItem
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OrderItem snapshots name and price at order time; MenuItemID is a weak
// reference and may point at a deleted item.
type OrderItem struct {
	ID         int64
	OrderID    int64
	MenuItemID *int64
	ItemName   string
	Price      float64
	Quantity   int
}

// CanTransition reports whether moving to target is a legal edge.
func (o *Order) CanTransition(target OrderStatus) bool {
	for _, next := range ValidTransitions[o.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// Transition mutates status only when the edge is legal.
func (o *Order) Transition(target OrderStatus) bool {
	if !o.CanTransition(target) {
		return false
	}
	o.Status = target
	return true
}

// Terminal reports whether the order reached a state with no outgoing edges.
func (o *Order) Terminal() bool {
	return len(ValidTransitions[o.Status]) == 0
}

// TotalItems sums item quantities.
func (o *Order) TotalItems() int {
	var n int
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// Subtotal returns one line's price times quantity.
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
