package stripegw

import (
	"context"
	"errors"

	"github.com/campusbites/canteen/internal/domain/model"
)

var ErrMalformedEvent = errors.New("malformed gateway event")

// CheckoutSession is a handle for a hosted payment page.
type CheckoutSession struct {
	ID          string
	RedirectURL string
}

// SessionStatus is the gateway's view of a checkout session.
type SessionStatus struct {
	ID            string
	Paid          bool
	TransactionID string
	Raw           []byte
}

// WebhookEvent is a verified completion notification from the gateway.
type WebhookEvent struct {
	SessionID     string
	Completed     bool
	TransactionID string
	Raw           []byte
}

// Gateway wraps the hosted checkout provider. Sessions carry the order
// token and ids as metadata so callbacks can be traced in the dashboard.
type Gateway interface {
	CreateSession(ctx context.Context, order *model.Order) (*CheckoutSession, error)
	FetchSession(ctx context.Context, sessionID string) (*SessionStatus, error)
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
