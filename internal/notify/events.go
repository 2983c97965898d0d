package notify

import (
	"time"

	"github.com/campusbites/canteen/internal/domain/model"
)

// OrderEvent is the kitchen display payload. It is published when an order
// becomes visible to the kitchen and on every later status change.
type OrderEvent struct {
	ID                  int64            `json:"id"`
	Token               string           `json:"token"`
	Status              string           `json:"status"`
	Items               []OrderEventItem `json:"items"`
	SpecialInstructions string           `json:"special_instructions,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	DeliveryType        string           `json:"delivery_type"`
	DeliveryLocation    string           `json:"delivery_location,omitempty"`
	NewOrder            bool             `json:"new_order"`
}

type OrderEventItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"qty"`
}

// MenuEvent announces an availability flip so displays can grey items out.
type MenuEvent struct {
	ItemID      int64  `json:"item_id"`
	ItemName    string `json:"item_name"`
	IsAvailable bool   `json:"is_available"`
}

// NewOrderEvent builds the kitchen payload from a loaded order.
func NewOrderEvent(order *model.Order, newOrder bool) OrderEvent {
	items := make([]OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderEventItem{Name: item.ItemName, Quantity: item.Quantity})
	}
	return OrderEvent{
		ID:                  order.ID,
		Token:               order.Token,
		Status:              string(order.Status),
		Items:               items,
		SpecialInstructions: order.SpecialInstructions,
		CreatedAt:           order.CreatedAt,
		DeliveryType:        string(order.DeliveryType),
		DeliveryLocation:    order.DeliveryLocation,
		NewOrder:            newOrder,
	}
}

// NewMenuEvent builds the availability payload for a menu item.
func NewMenuEvent(item *model.MenuItem) MenuEvent {
	return MenuEvent{
		ItemID:      item.ID,
		ItemName:    item.Name,
		IsAvailable: item.IsAvailable,
	}
}
