package repository

import (
	"context"

	"github.com/campusbites/canteen/internal/domain/model"
)

// WalletRepository manages the denormalized balance and its append-only
// ledger.
type WalletRepository interface {
	Balance(ctx context.Context, userID int64) (float64, error)
	// TopUp credits the balance under a row lock, refusing amounts that
	// would push the balance over maxBalance.
	TopUp(ctx context.Context, userID int64, amount, maxBalance float64, reference string) (float64, error)
	ListByUser(ctx context.Context, userID int64, filter model.WalletTxnType, limit, offset int) ([]model.WalletTransaction, error)
	Summary(ctx context.Context, userID int64) (*model.WalletSummary, error)
}
