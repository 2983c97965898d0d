package auth

import "time"

// Strategy issues and verifies bearer tokens for authenticated users.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes token issuing.
type Options struct {
	TTL time.Duration
}
