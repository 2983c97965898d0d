package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/campusbites/canteen/internal/config"
	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/domain/repository"
)

// WalletUseCase owns top-ups and ledger reads. Bounds come from config:
// minimum per top-up, maximum per top-up and a balance ceiling.
type WalletUseCase struct {
	wallets repository.WalletRepository
	cfg     *config.Config

	newReference func() string
}

// NewWalletUseCase constructs WalletUseCase.
func NewWalletUseCase(wallets repository.WalletRepository, cfg *config.Config) *WalletUseCase {
	return &WalletUseCase{wallets: wallets, cfg: cfg, newReference: uuid.NewString}
}

// TopUp credits the balance after bounds checks. Returns the new balance.
func (u *WalletUseCase) TopUp(ctx context.Context, userID int64, amount float64) (float64, error) {
	if amount < u.cfg.MinTopUpAmount {
		return 0, domainErrors.ErrInvalidAmount
	}
	if amount > u.cfg.MaxSingleTopUp {
		return 0, domainErrors.ErrWalletCapExceeded
	}
	return u.wallets.TopUp(ctx, userID, amount, u.cfg.MaxWalletBalance, u.newReference())
}

// Balance returns the current denormalized balance.
func (u *WalletUseCase) Balance(ctx context.Context, userID int64) (float64, error) {
	return u.wallets.Balance(ctx, userID)
}

// Transactions lists ledger entries, optionally filtered by direction.
func (u *WalletUseCase) Transactions(ctx context.Context, userID int64, filter model.WalletTxnType, limit, offset int) ([]model.WalletTransaction, error) {
	if filter != model.WalletCredit && filter != model.WalletDebit {
		filter = ""
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.wallets.ListByUser(ctx, userID, filter, limit, offset)
}

// Summary returns the balance with this month's credit/debit totals.
func (u *WalletUseCase) Summary(ctx context.Context, userID int64) (*model.WalletSummary, error) {
	return u.wallets.Summary(ctx, userID)
}
