package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbites/canteen/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage needs; pgxmock satisfies
// it in tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct{ storage *Storage }
type menuRepository struct{ storage *Storage }
type orderRepository struct{ storage *Storage }
type paymentRepository struct{ storage *Storage }
type walletRepository struct{ storage *Storage }
type feedbackRepository struct{ storage *Storage }

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository        { return &userRepository{storage: s} }
func (s *Storage) Menu() repository.MenuRepository         { return &menuRepository{storage: s} }
func (s *Storage) Orders() repository.OrderRepository      { return &orderRepository{storage: s} }
func (s *Storage) Payments() repository.PaymentRepository  { return &paymentRepository{storage: s} }
func (s *Storage) Wallets() repository.WalletRepository    { return &walletRepository{storage: s} }
func (s *Storage) Feedback() repository.FeedbackRepository { return &feedbackRepository{storage: s} }

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            email_verified BOOLEAN NOT NULL DEFAULT FALSE,
            role TEXT NOT NULL DEFAULT 'student',
            full_name TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            college_id TEXT NOT NULL DEFAULT '',
            wallet_balance DOUBLE PRECISION NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            is_active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS menu_items (
            id SERIAL PRIMARY KEY,
            category_id BIGINT NOT NULL REFERENCES categories(id),
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            preparation_time INT NOT NULL DEFAULT 10,
            is_available BOOLEAN NOT NULL DEFAULT TRUE,
            is_todays_special BOOLEAN NOT NULL DEFAULT FALSE,
            is_vegetarian BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            token TEXT UNIQUE NOT NULL,
            status TEXT NOT NULL DEFAULT 'payment_pending',
            payment_method TEXT NOT NULL DEFAULT 'cash',
            is_paid BOOLEAN NOT NULL DEFAULT FALSE,
            total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
            special_instructions TEXT NOT NULL DEFAULT '',
            delivery_type TEXT NOT NULL DEFAULT 'pickup',
            delivery_location TEXT NOT NULL DEFAULT '',
            delivery_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
            scheduled_for TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            menu_item_id BIGINT,
            item_name TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            quantity INT NOT NULL DEFAULT 1
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            amount DOUBLE PRECISION NOT NULL,
            method TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            transaction_id TEXT NOT NULL DEFAULT '',
            gateway_session_id TEXT UNIQUE,
            gateway_response JSONB,
            failure_reason TEXT NOT NULL DEFAULT '',
            refunded_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS wallet_transactions (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            amount DOUBLE PRECISION NOT NULL,
            type TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            reference_id TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS feedback (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            subject TEXT NOT NULL,
            message TEXT NOT NULL,
            rating INT NOT NULL DEFAULT 0,
            status TEXT NOT NULL DEFAULT 'open',
            admin_response TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_order ON payments(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_pending ON payments(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_wallet_txn_user ON wallet_transactions(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_menu_items_category ON menu_items(category_id, is_available)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

const (
	tokenLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	tokenDigits  = "0123456789"
)

// generateToken builds an order token like TKN-A1B2C3.
func generateToken() string {
	buf := make([]byte, 0, 10)
	buf = append(buf, "TKN-"...)
	for i := 0; i < 3; i++ {
		buf = append(buf, tokenLetters[rand.Intn(len(tokenLetters))])
	}
	for i := 0; i < 3; i++ {
		buf = append(buf, tokenDigits[rand.Intn(len(tokenDigits))])
	}
	return string(buf)
}

// fallbackToken is longer and virtually collision-proof.
func fallbackToken() string {
	const alphabet = tokenLetters + tokenDigits
	buf := make([]byte, 0, 12)
	buf = append(buf, "TKN-"...)
	for i := 0; i < 8; i++ {
		buf = append(buf, alphabet[rand.Intn(len(alphabet))])
	}
	return string(buf)
}
