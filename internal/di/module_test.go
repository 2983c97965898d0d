package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/campusbites/canteen/internal/adapter/stripegw"
	"github.com/campusbites/canteen/internal/app"
	"github.com/campusbites/canteen/internal/config"
	"github.com/campusbites/canteen/internal/domain/repository"
	"github.com/campusbites/canteen/internal/notify"
	"github.com/campusbites/canteen/internal/storage/postgres"
	"github.com/campusbites/canteen/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		JWTSecret:         "secret",
		ReconcileInterval: time.Millisecond,
		ReconcileBatch:    1,
		WorkerPoolSize:    1,
		ShutdownTimeout:   time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	menuRepo := &test.MenuRepositoryStub{}
	orderRepo := &test.OrderRepositoryStub{}
	paymentRepo := &test.PaymentRepositoryStub{}
	walletRepo := test.NewWalletRepositoryStub()
	feedbackRepo := &test.FeedbackRepositoryStub{}

	var facade *app.CanteenFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.MenuRepository(menuRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.PaymentRepository(paymentRepo)),
			fx.Replace(repository.WalletRepository(walletRepo)),
			fx.Replace(repository.FeedbackRepository(feedbackRepo)),
			fx.Replace(stripegw.Gateway(&test.GatewayStub{})),
			fx.Replace(notify.Publisher(&test.PublisherStub{})),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected canteen facade instance")
	}
}
