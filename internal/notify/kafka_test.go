package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/campusbites/canteen/internal/domain/model"
)

type capturedWriter struct {
	messages []kafka.Message
	err      error
}

func (w *capturedWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *capturedWriter) Close() error { return nil }

func TestPublishOrderPayload(t *testing.T) {
	orders := &capturedWriter{}
	p := &KafkaPublisher{orders: orders, menu: &capturedWriter{}}

	order := &model.Order{
		ID:     12,
		Token:  "TKN-ABC123",
		Status: model.OrderStatusConfirmed,
		Items: []model.OrderItem{
			{ItemName: "Masala Dosa", Quantity: 2},
			{ItemName: "Filter Coffee", Quantity: 1},
		},
		SpecialInstructions: "less spicy",
		DeliveryType:        model.DeliveryClassroom,
		DeliveryLocation:    "Room 204",
		CreatedAt:           time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC),
	}
	if err := p.PublishOrder(context.Background(), NewOrderEvent(order, true)); err != nil {
		t.Fatalf("publish order: %v", err)
	}
	if len(orders.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(orders.messages))
	}
	if got := string(orders.messages[0].Key); got != "TKN-ABC123" {
		t.Fatalf("unexpected key: %s", got)
	}

	var event OrderEvent
	if err := json.Unmarshal(orders.messages[0].Value, &event); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if !event.NewOrder {
		t.Fatal("expected new_order flag set")
	}
	if event.Status != "confirmed" {
		t.Fatalf("unexpected status: %s", event.Status)
	}
	if len(event.Items) != 2 || event.Items[0].Name != "Masala Dosa" || event.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", event.Items)
	}
}

func TestPublishMenuPayload(t *testing.T) {
	menu := &capturedWriter{}
	p := &KafkaPublisher{orders: &capturedWriter{}, menu: menu}

	item := &model.MenuItem{ID: 5, Name: "Veg Thali", IsAvailable: false}
	if err := p.PublishMenu(context.Background(), NewMenuEvent(item)); err != nil {
		t.Fatalf("publish menu: %v", err)
	}
	if len(menu.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(menu.messages))
	}
	if got := string(menu.messages[0].Key); got != "5" {
		t.Fatalf("unexpected key: %s", got)
	}

	var event MenuEvent
	if err := json.Unmarshal(menu.messages[0].Value, &event); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if event.IsAvailable {
		t.Fatal("expected availability false")
	}
	if event.ItemName != "Veg Thali" {
		t.Fatalf("unexpected name: %s", event.ItemName)
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.PublishOrder(context.Background(), OrderEvent{}); err != nil {
		t.Fatalf("nop order publish: %v", err)
	}
	if err := p.PublishMenu(context.Background(), MenuEvent{}); err != nil {
		t.Fatalf("nop menu publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("nop close: %v", err)
	}
}
