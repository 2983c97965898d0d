package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/campusbites/canteen/internal/chatbot"
	"github.com/campusbites/canteen/internal/config"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/pkg/otp"
	testhelpers "github.com/campusbites/canteen/internal/test"
	"github.com/campusbites/canteen/internal/usecase"
)

type facadeFixture struct {
	facade   *CanteenFacade
	users    *testhelpers.UserRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
	payments *testhelpers.PaymentRepositoryStub
	wallets  *testhelpers.WalletRepositoryStub
	menu     *testhelpers.MenuRepositoryStub
	gateway  *testhelpers.GatewayStub
}

func newFacade() *facadeFixture {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := &config.Config{
		MinTopUpAmount:   10,
		MaxSingleTopUp:   2000,
		MaxWalletBalance: 5000,
		DeliveryFee:      10,
	}

	users := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	codes := otp.NewStore(otp.StoreOptions{})
	authUC := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, strategy, codes, &testhelpers.SenderStub{}, logger)

	orders := &testhelpers.OrderRepositoryStub{}
	menu := &testhelpers.MenuRepositoryStub{Items: []model.MenuItem{
		{ID: 1, Name: "Masala Dosa", Price: 45, IsAvailable: true, IsVegetarian: true},
	}}
	publisher := &testhelpers.PublisherStub{}
	orderUC := usecase.NewOrderUseCase(orders, menu, publisher, cfg, logger)

	payments := &testhelpers.PaymentRepositoryStub{}
	gateway := &testhelpers.GatewayStub{}
	paymentUC := usecase.NewPaymentUseCase(payments, orders, gateway, publisher, logger)

	wallets := testhelpers.NewWalletRepositoryStub()
	walletUC := usecase.NewWalletUseCase(wallets, cfg)

	menuUC := usecase.NewMenuUseCase(menu, publisher, logger)
	feedbackUC := usecase.NewFeedbackUseCase(&testhelpers.FeedbackRepositoryStub{}, users)
	bot := chatbot.New(menu, orders, wallets, logger)

	return &facadeFixture{
		facade:   NewCanteenFacade(authUC, orderUC, paymentUC, walletUC, menuUC, feedbackUC, bot, gateway),
		users:    users,
		orders:   orders,
		payments: payments,
		wallets:  wallets,
		menu:     menu,
		gateway:  gateway,
	}
}

func TestCanteenFacadeAuth(t *testing.T) {
	f := newFacade()
	user, token, err := f.facade.Register(context.Background(), usecase.RegisterInput{
		Login:    "asha",
		Password: "secret",
		Email:    "asha@campus.edu",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}
	if user == nil || user.Login != "asha" {
		t.Fatalf("unexpected user %+v", user)
	}

	_, token, err = f.facade.Authenticate(context.Background(), "asha", "secret")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	id, err := f.facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}
}

func TestCanteenFacadeOrderFlow(t *testing.T) {
	f := newFacade()
	order, err := f.facade.PlaceOrder(context.Background(), 7, usecase.PlaceOrderInput{
		Items:         []usecase.OrderItemInput{{MenuItemID: 1, Quantity: 2}},
		PaymentMethod: model.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if order.Token == "" {
		t.Fatal("expected order token")
	}

	fetched, err := f.facade.Order(context.Background(), 7, order.Token)
	if err != nil {
		t.Fatalf("order lookup returned error: %v", err)
	}
	if fetched.ID != order.ID {
		t.Fatalf("expected order %d, got %d", order.ID, fetched.ID)
	}

	paid, err := f.facade.PayCash(context.Background(), 7, order.Token)
	if err != nil {
		t.Fatalf("pay cash returned error: %v", err)
	}
	if len(f.payments.Payments) != 1 {
		t.Fatalf("expected one payment, got %d", len(f.payments.Payments))
	}
	if paid.Token != order.Token {
		t.Fatalf("unexpected order %+v", paid)
	}
}

func TestCanteenFacadeWallet(t *testing.T) {
	f := newFacade()
	balance, err := f.facade.WalletTopUp(context.Background(), 5, 300)
	if err != nil {
		t.Fatalf("top up returned error: %v", err)
	}
	if balance != 300 {
		t.Fatalf("expected balance 300, got %v", balance)
	}

	summary, err := f.facade.WalletSummary(context.Background(), 5)
	if err != nil {
		t.Fatalf("summary returned error: %v", err)
	}
	if summary.Balance != 300 {
		t.Fatalf("expected summary balance 300, got %v", summary.Balance)
	}
}

func TestCanteenFacadeReconciliation(t *testing.T) {
	f := newFacade()
	order, err := f.facade.PlaceOrder(context.Background(), 3, usecase.PlaceOrderInput{
		Items:         []usecase.OrderItemInput{{MenuItemID: 1, Quantity: 1}},
		PaymentMethod: model.PaymentMethodOnline,
	})
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}

	session, err := f.facade.StartOnlinePayment(context.Background(), 3, order.Token)
	if err != nil {
		t.Fatalf("start online returned error: %v", err)
	}

	pending, err := f.facade.PendingSessions(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("pending sessions returned error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending session, got %d", len(pending))
	}

	status, err := f.facade.FetchSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("fetch session returned error: %v", err)
	}
	if !status.Paid {
		t.Fatal("stub session should report paid")
	}

	created, err := f.facade.CompleteSession(context.Background(), session.ID, status.TransactionID, nil)
	if err != nil {
		t.Fatalf("complete session returned error: %v", err)
	}
	if !created {
		t.Fatal("expected first completion to apply")
	}

	created, err = f.facade.CompleteSession(context.Background(), session.ID, status.TransactionID, nil)
	if err != nil {
		t.Fatalf("repeat completion returned error: %v", err)
	}
	if created {
		t.Fatal("repeat completion should be a no-op")
	}
}

func TestCanteenFacadeChat(t *testing.T) {
	f := newFacade()
	f.wallets.Balances[42] = 120.5

	reply := f.facade.Chat(context.Background(), 42, "what is my wallet balance")
	if reply.Intent != "wallet_balance" {
		t.Fatalf("unexpected intent %q", reply.Intent)
	}
}
