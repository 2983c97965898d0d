package dto

import "time"

// OrderItemRequest is one checkout line.
type OrderItemRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

// PlaceOrderRequest describes the checkout payload.
type PlaceOrderRequest struct {
	Items               []OrderItemRequest `json:"items"`
	PaymentMethod       string             `json:"payment_method"`
	DeliveryType        string             `json:"delivery_type"`
	DeliveryLocation    string             `json:"delivery_location"`
	SpecialInstructions string             `json:"special_instructions"`
	ScheduledFor        *time.Time         `json:"scheduled_for"`
}

// OrderItemResponse is one snapshotted order line.
type OrderItemResponse struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	Token               string              `json:"token"`
	Status              string              `json:"status"`
	PaymentMethod       string              `json:"payment_method"`
	IsPaid              bool                `json:"is_paid"`
	TotalAmount         float64             `json:"total_amount"`
	DeliveryFee         float64             `json:"delivery_fee,omitempty"`
	DeliveryType        string              `json:"delivery_type"`
	DeliveryLocation    string              `json:"delivery_location,omitempty"`
	SpecialInstructions string              `json:"special_instructions,omitempty"`
	ScheduledFor        *time.Time          `json:"scheduled_for,omitempty"`
	Items               []OrderItemResponse `json:"items"`
	CreatedAt           time.Time           `json:"created_at"`
}

// CancelOrderResponse reports the cancelled order and whether a wallet
// refund was issued.
type CancelOrderResponse struct {
	Order    OrderResponse `json:"order"`
	Refunded bool          `json:"refunded"`
}

// StatusUpdateRequest advances an order through the kitchen lifecycle.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}
