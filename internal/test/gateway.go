package test

import (
	"context"

	"github.com/campusbites/canteen/internal/adapter/stripegw"
	"github.com/campusbites/canteen/internal/domain/model"
)

// GatewayStub fakes the hosted checkout provider.
type GatewayStub struct {
	CreateSessionFn func(context.Context, *model.Order) (*stripegw.CheckoutSession, error)
	FetchSessionFn  func(context.Context, string) (*stripegw.SessionStatus, error)
	ParseWebhookFn  func([]byte, string) (*stripegw.WebhookEvent, error)

	Created []int64
}

func (s *GatewayStub) CreateSession(ctx context.Context, order *model.Order) (*stripegw.CheckoutSession, error) {
	s.Created = append(s.Created, order.ID)
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, order)
	}
	return &stripegw.CheckoutSession{ID: "cs_stub", RedirectURL: "https://checkout.test/cs_stub"}, nil
}

func (s *GatewayStub) FetchSession(ctx context.Context, sessionID string) (*stripegw.SessionStatus, error) {
	if s.FetchSessionFn != nil {
		return s.FetchSessionFn(ctx, sessionID)
	}
	return &stripegw.SessionStatus{ID: sessionID, Paid: true, TransactionID: "pi_stub"}, nil
}

func (s *GatewayStub) ParseWebhook(payload []byte, signature string) (*stripegw.WebhookEvent, error) {
	if s.ParseWebhookFn != nil {
		return s.ParseWebhookFn(payload, signature)
	}
	return &stripegw.WebhookEvent{Raw: payload}, nil
}
