package model

import "testing"

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"payment_pending", OrderStatusPaymentPending, "payment_pending"},
		{"pending", OrderStatusPending, "pending"},
		{"confirmed", OrderStatusConfirmed, "confirmed"},
		{"preparing", OrderStatusPreparing, "preparing"},
		{"ready", OrderStatusReady, "ready"},
		{"out_for_delivery", OrderStatusOutForDelivery, "out_for_delivery"},
		{"delivered", OrderStatusDelivered, "delivered"},
		{"collected", OrderStatusCollected, "collected"},
		{"cancelled", OrderStatusCancelled, "cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func allStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPaymentPending,
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusOutForDelivery,
		OrderStatusDelivered,
		OrderStatusCollected,
		OrderStatusCancelled,
	}
}

func TestOrderTransitionTable(t *testing.T) {
	allowed := map[OrderStatus]map[OrderStatus]bool{}
	for from, targets := range ValidTransitions {
		allowed[from] = map[OrderStatus]bool{}
		for _, to := range targets {
			allowed[from][to] = true
		}
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			order := &Order{Status: from}
			ok := order.Transition(to)
			if ok != allowed[from][to] {
				t.Fatalf("%s -> %s: transition returned %v", from, to, ok)
			}
			if ok && order.Status != to {
				t.Fatalf("%s -> %s: status not updated", from, to)
			}
			if !ok && order.Status != from {
				t.Fatalf("%s -> %s: rejected transition mutated status to %s", from, to, order.Status)
			}
		}
	}
}

func TestOrderTerminalStates(t *testing.T) {
	terminal := map[OrderStatus]bool{
		OrderStatusDelivered: true,
		OrderStatusCollected: true,
		OrderStatusCancelled: true,
	}
	for _, st := range allStatuses() {
		o := &Order{Status: st}
		if o.Terminal() != terminal[st] {
			t.Fatalf("%s: Terminal() = %v", st, o.Terminal())
		}
	}
}

func TestOrderItemSubtotalAndTotals(t *testing.T) {
	order := &Order{Items: []OrderItem{
		{ItemName: "Masala Dosa", Price: 40, Quantity: 2},
		{ItemName: "Tea", Price: 10, Quantity: 3},
	}}
	if got := order.TotalItems(); got != 5 {
		t.Fatalf("expected 5 items, got %d", got)
	}
	if got := order.Items[0].Subtotal(); got != 80 {
		t.Fatalf("expected subtotal 80, got %v", got)
	}
}

func TestFeedbackTransitions(t *testing.T) {
	f := &Feedback{Status: FeedbackOpen}
	if !f.CanTransition(FeedbackInProgress) {
		t.Fatal("open should advance to in_progress")
	}
	if f.CanTransition(FeedbackResolved) {
		t.Fatal("open must not jump straight to resolved")
	}
	f.Status = FeedbackResolved
	if f.CanTransition(FeedbackOpen) || f.CanTransition(FeedbackInProgress) {
		t.Fatal("resolved is terminal")
	}
}
