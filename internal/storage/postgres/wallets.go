package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
)

func (r *walletRepository) Balance(ctx context.Context, userID int64) (float64, error) {
	var balance float64
	err := r.storage.pool.QueryRow(ctx,
		`SELECT wallet_balance FROM users WHERE id=$1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, err
	}
	return balance, nil
}

func (r *walletRepository) TopUp(ctx context.Context, userID int64, amount, maxBalance float64, reference string) (float64, error) {
	var newBalance float64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var balance float64
		err := tx.QueryRow(ctx,
			`SELECT wallet_balance FROM users WHERE id=$1 FOR UPDATE`, userID).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if balance+amount > maxBalance {
			return domainErrors.ErrWalletCapExceeded
		}
		if err := tx.QueryRow(ctx,
			`UPDATE users SET wallet_balance = wallet_balance + $1 WHERE id=$2 RETURNING wallet_balance`,
			amount, userID).Scan(&newBalance); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO wallet_transactions (user_id, amount, type, description, reference_id)
             VALUES ($1, $2, 'credit', 'Wallet top-up', $3)`,
			userID, amount, reference); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (r *walletRepository) ListByUser(ctx context.Context, userID int64, filter model.WalletTxnType, limit, offset int) ([]model.WalletTransaction, error) {
	const base = `SELECT id, user_id, amount, type, description, reference_id, created_at
                  FROM wallet_transactions WHERE user_id=$1`
	var (
		rows pgx.Rows
		err  error
	)
	if filter == "" {
		rows, err = r.storage.pool.Query(ctx,
			base+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	} else {
		rows, err = r.storage.pool.Query(ctx,
			base+` AND type=$2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`, userID, filter, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.WalletTransaction
	for rows.Next() {
		var w model.WalletTransaction
		if err := rows.Scan(&w.ID, &w.UserID, &w.Amount, &w.Type, &w.Description, &w.ReferenceID, &w.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *walletRepository) Summary(ctx context.Context, userID int64) (*model.WalletSummary, error) {
	var summary model.WalletSummary
	err := r.storage.pool.QueryRow(ctx,
		`SELECT wallet_balance FROM users WHERE id=$1`, userID).Scan(&summary.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	err = r.storage.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount) FILTER (WHERE type='credit'), 0),
                COALESCE(SUM(amount) FILTER (WHERE type='debit'), 0)
         FROM wallet_transactions
         WHERE user_id=$1 AND created_at >= date_trunc('month', NOW())`, userID,
	).Scan(&summary.MonthCredits, &summary.MonthDebits)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
