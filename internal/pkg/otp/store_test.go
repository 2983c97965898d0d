package otp

import (
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T, opts StoreOptions) (*Store, *time.Time) {
	t.Helper()
	s := NewStore(opts)
	current := time.Now()
	s.now = func() time.Time { return current }
	return s, &current
}

func TestStoreIssueAndVerify(t *testing.T) {
	s, _ := newTestStore(t, StoreOptions{})
	code, err := s.Issue("user@campus.edu")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("unexpected code length: %q", code)
	}
	if err := s.Verify("user@campus.edu", code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := s.Verify("user@campus.edu", code); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected consumed code to be gone, got %v", err)
	}
}

func TestStoreVerifyExpired(t *testing.T) {
	s, current := newTestStore(t, StoreOptions{TTL: time.Minute})
	code, err := s.Issue("user@campus.edu")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	*current = current.Add(2 * time.Minute)
	if err := s.Verify("user@campus.edu", code); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected ErrCodeExpired, got %v", err)
	}
}

func TestStoreAttemptLimit(t *testing.T) {
	s, _ := newTestStore(t, StoreOptions{MaxAttempts: 3})
	code, err := s.Issue("user@campus.edu")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.Verify("user@campus.edu", "000000"); !errors.Is(err, ErrCodeMismatch) {
			t.Fatalf("attempt %d: expected ErrCodeMismatch, got %v", i, err)
		}
	}
	if err := s.Verify("user@campus.edu", "000000"); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if err := s.Verify("user@campus.edu", code); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected code discarded after limit, got %v", err)
	}
}

func TestStoreResendCooldown(t *testing.T) {
	s, current := newTestStore(t, StoreOptions{ResendCooldown: time.Minute})
	if _, err := s.Issue("user@campus.edu"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := s.Issue("user@campus.edu"); !errors.Is(err, ErrResendTooSoon) {
		t.Fatalf("expected ErrResendTooSoon, got %v", err)
	}
	*current = current.Add(61 * time.Second)
	if _, err := s.Issue("user@campus.edu"); err != nil {
		t.Fatalf("issue after cooldown: %v", err)
	}
}
