package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/campusbites/canteen/internal/adapter/stripegw"
	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/test"
)

func newPaymentUseCase(payments *test.PaymentRepositoryStub, orders *test.OrderRepositoryStub, gateway *test.GatewayStub, publisher *test.PublisherStub) *PaymentUseCase {
	if payments == nil {
		payments = &test.PaymentRepositoryStub{}
	}
	if orders == nil {
		orders = &test.OrderRepositoryStub{}
	}
	if gateway == nil {
		gateway = &test.GatewayStub{}
	}
	if publisher == nil {
		publisher = &test.PublisherStub{}
	}
	uc := NewPaymentUseCase(payments, orders, gateway, publisher, discardLogger())
	uc.newReference = func() string { return "ref-1" }
	return uc
}

func pendingOrder(status model.OrderStatus) model.Order {
	return model.Order{
		ID: 1, UserID: 7, Token: "TKN-AAA111", Status: status,
		TotalAmount: 150,
		Items:       []model.OrderItem{{ItemName: "Thali", Price: 75, Quantity: 2}},
	}
}

func TestPayCashRecordsPendingPayment(t *testing.T) {
	payments := &test.PaymentRepositoryStub{}
	orders := &test.OrderRepositoryStub{Orders: []model.Order{pendingOrder(model.OrderStatusPaymentPending)}}
	publisher := &test.PublisherStub{}
	uc := newPaymentUseCase(payments, orders, nil, publisher)

	order, err := uc.PayCash(context.Background(), 7, "TKN-AAA111")
	if err != nil {
		t.Fatalf("pay cash: %v", err)
	}
	if order.Status != model.OrderStatusPending || order.IsPaid {
		t.Fatalf("unexpected order state: %+v", order)
	}
	if len(payments.Payments) != 1 || payments.Payments[0].Status != model.PaymentStatusPending || payments.Payments[0].Method != model.PaymentMethodCash {
		t.Fatalf("unexpected payments: %+v", payments.Payments)
	}
	events := publisher.Orders()
	if len(events) != 1 || !events[0].NewOrder {
		t.Fatalf("expected new-order fan-out, got %+v", events)
	}
}

func TestPayCashAlreadyPaid(t *testing.T) {
	order := pendingOrder(model.OrderStatusConfirmed)
	order.IsPaid = true
	orders := &test.OrderRepositoryStub{Orders: []model.Order{order}}
	uc := newPaymentUseCase(nil, orders, nil, nil)

	if _, err := uc.PayCash(context.Background(), 7, "TKN-AAA111"); !errors.Is(err, domainErrors.ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestPayWalletConfirmsOrder(t *testing.T) {
	payments := &test.PaymentRepositoryStub{}
	orders := &test.OrderRepositoryStub{Orders: []model.Order{pendingOrder(model.OrderStatusPending)}}
	publisher := &test.PublisherStub{}
	uc := newPaymentUseCase(payments, orders, nil, publisher)

	order, err := uc.PayWallet(context.Background(), 7, "TKN-AAA111")
	if err != nil {
		t.Fatalf("pay wallet: %v", err)
	}
	if order.Status != model.OrderStatusConfirmed || !order.IsPaid {
		t.Fatalf("unexpected order state: %+v", order)
	}
	events := publisher.Orders()
	if len(events) != 1 || events[0].Status != "confirmed" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestPayWalletInsufficientBalance(t *testing.T) {
	payments := &test.PaymentRepositoryStub{
		PayWithWalletFn: func(context.Context, *model.Order, string) error {
			return domainErrors.ErrInsufficientBalance
		},
	}
	orders := &test.OrderRepositoryStub{Orders: []model.Order{pendingOrder(model.OrderStatusPending)}}
	publisher := &test.PublisherStub{}
	uc := newPaymentUseCase(payments, orders, nil, publisher)

	if _, err := uc.PayWallet(context.Background(), 7, "TKN-AAA111"); !errors.Is(err, domainErrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if len(publisher.Orders()) != 0 {
		t.Fatal("no fan-out on failed payment")
	}
}

func TestStartOnlineAttachesSession(t *testing.T) {
	payments := &test.PaymentRepositoryStub{}
	orders := &test.OrderRepositoryStub{Orders: []model.Order{pendingOrder(model.OrderStatusPaymentPending)}}
	gateway := &test.GatewayStub{
		CreateSessionFn: func(_ context.Context, o *model.Order) (*stripegw.CheckoutSession, error) {
			return &stripegw.CheckoutSession{ID: "cs_77", RedirectURL: "https://pay.example/cs_77"}, nil
		},
	}
	uc := newPaymentUseCase(payments, orders, gateway, nil)

	session, err := uc.StartOnline(context.Background(), 7, "TKN-AAA111")
	if err != nil {
		t.Fatalf("start online: %v", err)
	}
	if session.RedirectURL != "https://pay.example/cs_77" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if len(payments.Payments) != 1 || *payments.Payments[0].GatewaySessionID != "cs_77" {
		t.Fatalf("unexpected payments: %+v", payments.Payments)
	}
}

func TestWebhookIdempotent(t *testing.T) {
	confirmed := pendingOrder(model.OrderStatusConfirmed)
	confirmed.IsPaid = true
	orders := &test.OrderRepositoryStub{
		GetByIDFn: func(context.Context, int64) (*model.Order, error) {
			order := confirmed
			return &order, nil
		},
	}
	sessionID := "cs_77"
	payments := &test.PaymentRepositoryStub{Payments: []model.Payment{
		{ID: 1, OrderID: 1, Status: model.PaymentStatusPending, GatewaySessionID: &sessionID},
	}}
	payments.Next = 2
	gateway := &test.GatewayStub{
		ParseWebhookFn: func(payload []byte, _ string) (*stripegw.WebhookEvent, error) {
			return &stripegw.WebhookEvent{SessionID: "cs_77", Completed: true, TransactionID: "pi_9", Raw: payload}, nil
		},
	}
	publisher := &test.PublisherStub{}
	uc := newPaymentUseCase(payments, orders, gateway, publisher)

	for i := 0; i < 2; i++ {
		if err := uc.HandleWebhook(context.Background(), []byte(`{}`), "sig"); err != nil {
			t.Fatalf("webhook %d: %v", i, err)
		}
	}
	if len(payments.Completed) != 1 {
		t.Fatalf("expected exactly one completion, got %d", len(payments.Completed))
	}
	if len(payments.Payments) != 1 {
		t.Fatalf("expected one payment row, got %d", len(payments.Payments))
	}
	// only the first delivery confirms and fans out
	if got := len(publisher.Orders()); got != 1 {
		t.Fatalf("expected one fan-out, got %d", got)
	}
}

func TestWebhookMalformed(t *testing.T) {
	gateway := &test.GatewayStub{
		ParseWebhookFn: func([]byte, string) (*stripegw.WebhookEvent, error) {
			return nil, stripegw.ErrMalformedEvent
		},
	}
	uc := newPaymentUseCase(nil, nil, gateway, nil)
	if err := uc.HandleWebhook(context.Background(), []byte("junk"), ""); !errors.Is(err, stripegw.ErrMalformedEvent) {
		t.Fatalf("expected ErrMalformedEvent, got %v", err)
	}
}

func TestWebhookUnknownSessionIsNoOp(t *testing.T) {
	gateway := &test.GatewayStub{
		ParseWebhookFn: func([]byte, string) (*stripegw.WebhookEvent, error) {
			return &stripegw.WebhookEvent{SessionID: "cs_unknown", Completed: true}, nil
		},
	}
	uc := newPaymentUseCase(&test.PaymentRepositoryStub{}, nil, gateway, nil)
	if err := uc.HandleWebhook(context.Background(), []byte(`{}`), ""); err != nil {
		t.Fatalf("unknown session should not fail: %v", err)
	}
}

func TestConfirmCallbackRequiresPaidSession(t *testing.T) {
	orders := &test.OrderRepositoryStub{Orders: []model.Order{pendingOrder(model.OrderStatusPaymentPending)}}
	gateway := &test.GatewayStub{
		FetchSessionFn: func(_ context.Context, id string) (*stripegw.SessionStatus, error) {
			return &stripegw.SessionStatus{ID: id, Paid: false}, nil
		},
	}
	uc := newPaymentUseCase(nil, orders, gateway, nil)
	if _, err := uc.ConfirmCallback(context.Background(), 7, "TKN-AAA111", "cs_1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unpaid session, got %v", err)
	}
}

func TestConfirmCallbackCompletes(t *testing.T) {
	orders := &test.OrderRepositoryStub{Orders: []model.Order{pendingOrder(model.OrderStatusPaymentPending)}}
	sessionID := "cs_1"
	payments := &test.PaymentRepositoryStub{Payments: []model.Payment{
		{ID: 1, OrderID: 1, Status: model.PaymentStatusPending, GatewaySessionID: &sessionID},
	}}
	payments.Next = 2
	uc := newPaymentUseCase(payments, orders, nil, nil)

	if _, err := uc.ConfirmCallback(context.Background(), 7, "TKN-AAA111", "cs_1"); err != nil {
		t.Fatalf("confirm callback: %v", err)
	}
	if len(payments.Completed) != 1 || payments.Completed[0] != "cs_1" {
		t.Fatalf("unexpected completions: %v", payments.Completed)
	}
}
