package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/campusbites/canteen/internal/config"
	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/test"
)

func walletConfig() *config.Config {
	return &config.Config{
		MinTopUpAmount:   10,
		MaxSingleTopUp:   5000,
		MaxWalletBalance: 10000,
	}
}

func TestTopUpBounds(t *testing.T) {
	wallets := test.NewWalletRepositoryStub()
	uc := NewWalletUseCase(wallets, walletConfig())
	uc.newReference = func() string { return "ref-1" }

	if _, err := uc.TopUp(context.Background(), 1, 5); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := uc.TopUp(context.Background(), 1, 6000); !errors.Is(err, domainErrors.ErrWalletCapExceeded) {
		t.Fatalf("expected ErrWalletCapExceeded, got %v", err)
	}

	balance, err := uc.TopUp(context.Background(), 1, 500)
	if err != nil {
		t.Fatalf("topup: %v", err)
	}
	if balance != 500 {
		t.Fatalf("unexpected balance: %.2f", balance)
	}
	if len(wallets.Transactions) != 1 || wallets.Transactions[0].Type != model.WalletCredit {
		t.Fatalf("expected one credit ledger entry, got %+v", wallets.Transactions)
	}
}

func TestTopUpBalanceCeiling(t *testing.T) {
	wallets := test.NewWalletRepositoryStub()
	wallets.Balances[1] = 9800
	uc := NewWalletUseCase(wallets, walletConfig())
	uc.newReference = func() string { return "ref-1" }

	if _, err := uc.TopUp(context.Background(), 1, 500); !errors.Is(err, domainErrors.ErrWalletCapExceeded) {
		t.Fatalf("expected ErrWalletCapExceeded, got %v", err)
	}
	if wallets.Balances[1] != 9800 {
		t.Fatalf("balance must be unchanged, got %.2f", wallets.Balances[1])
	}
}

func TestTransactionsFilterNormalized(t *testing.T) {
	wallets := test.NewWalletRepositoryStub()
	var gotFilter model.WalletTxnType
	wallets.ListByUserFn = func(_ context.Context, _ int64, filter model.WalletTxnType, limit, _ int) ([]model.WalletTransaction, error) {
		gotFilter = filter
		if limit != 20 {
			t.Fatalf("unexpected default limit: %d", limit)
		}
		return nil, nil
	}
	uc := NewWalletUseCase(wallets, walletConfig())

	if _, err := uc.Transactions(context.Background(), 1, "bogus", 0, -5); err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if gotFilter != "" {
		t.Fatalf("expected cleared filter, got %q", gotFilter)
	}
}

func TestSummary(t *testing.T) {
	wallets := test.NewWalletRepositoryStub()
	wallets.Balances[1] = 350
	wallets.Transactions = []model.WalletTransaction{
		{UserID: 1, Amount: 500, Type: model.WalletCredit},
		{UserID: 1, Amount: 150, Type: model.WalletDebit},
		{UserID: 2, Amount: 999, Type: model.WalletCredit},
	}
	uc := NewWalletUseCase(wallets, walletConfig())

	summary, err := uc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Balance != 350 || summary.MonthCredits != 500 || summary.MonthDebits != 150 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
