package test

import (
	"context"
	"errors"

	"github.com/campusbites/canteen/internal/domain/model"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// SenderStub records OTP deliveries.
type SenderStub struct {
	Sent []SentCode
	Err  error
}

type SentCode struct {
	Email string
	Code  string
}

// Send stores the delivery or returns the configured error.
func (s *SenderStub) Send(_ context.Context, email, code string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, SentCode{Email: email, Code: code})
	return nil
}

// TokenParserStub resolves bearer tokens with a fixed answer.
type TokenParserStub struct {
	ID  int64
	Err error
}

// ParseToken returns the configured identifier or error.
func (s TokenParserStub) ParseToken(string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}

// UserDirectoryStub pairs token parsing with account lookup for role checks.
type UserDirectoryStub struct {
	TokenParserStub
	User    *model.User
	LookupE error
}

// UserByID returns the configured account.
func (s UserDirectoryStub) UserByID(context.Context, int64) (*model.User, error) {
	if s.LookupE != nil {
		return nil, s.LookupE
	}
	if s.User != nil {
		return s.User, nil
	}
	return &model.User{ID: s.ID, Role: model.RoleStudent}, nil
}
