package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"
)

var (
	ErrCodeExpired     = errors.New("otp code expired")
	ErrCodeMismatch    = errors.New("otp code mismatch")
	ErrTooManyAttempts = errors.New("too many otp attempts")
	ErrResendTooSoon   = errors.New("otp resend requested too soon")
)

const (
	defaultTTL            = 10 * time.Minute
	defaultMaxAttempts    = 5
	defaultResendCooldown = time.Minute
)

// Sender delivers a generated code to a user. Production deployments plug in
// an email or SMS sender; the default LogSender only writes the code to the
// application log.
type Sender interface {
	Send(ctx context.Context, email string, code string) error
}

type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, email string, code string) error {
	s.logger.Info("otp code issued", "email", email, "code", code)
	return nil
}

type entry struct {
	code      string
	expiresAt time.Time
	issuedAt  time.Time
	attempts  int
}

// Store keeps pending verification codes in memory, keyed by email.
// Verification consumes the code on success and after the attempt limit.
type Store struct {
	mu             sync.Mutex
	entries        map[string]entry
	ttl            time.Duration
	maxAttempts    int
	resendCooldown time.Duration
	now            func() time.Time
}

type StoreOptions struct {
	TTL            time.Duration
	MaxAttempts    int
	ResendCooldown time.Duration
}

func NewStore(opts StoreOptions) *Store {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.ResendCooldown <= 0 {
		opts.ResendCooldown = defaultResendCooldown
	}
	return &Store{
		entries:        make(map[string]entry),
		ttl:            opts.TTL,
		maxAttempts:    opts.MaxAttempts,
		resendCooldown: opts.ResendCooldown,
		now:            time.Now,
	}
}

// Issue generates a fresh six digit code for the email and returns it.
// A code issued within the resend cooldown is refused.
func (s *Store) Issue(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.entries[email]; ok {
		if now.Sub(existing.issuedAt) < s.resendCooldown && now.Before(existing.expiresAt) {
			return "", ErrResendTooSoon
		}
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	s.entries[email] = entry{
		code:      code,
		expiresAt: now.Add(s.ttl),
		issuedAt:  now,
	}
	return code, nil
}

// Verify checks the code for the email. The stored code is removed on
// success, on expiry and once the attempt limit is reached.
func (s *Store) Verify(email string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok {
		return ErrCodeExpired
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, email)
		return ErrCodeExpired
	}
	if e.code != code {
		e.attempts++
		if e.attempts >= s.maxAttempts {
			delete(s.entries, email)
			return ErrTooManyAttempts
		}
		s.entries[email] = e
		return ErrCodeMismatch
	}
	delete(s.entries, email)
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
