package stripegw

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/campusbites/canteen/internal/domain/model"
)

const currency = "inr"

// StripeGateway drives Stripe hosted checkout. An empty webhook secret
// switches ParseWebhook to unsigned JSON mode for local development.
type StripeGateway struct {
	webhookSecret string
	publicBaseURL string

	newSession   func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	fetchSession func(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func New(secretKey, webhookSecret, publicBaseURL string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{
		webhookSecret: webhookSecret,
		publicBaseURL: publicBaseURL,
		newSession:    session.New,
		fetchSession:  session.Get,
	}
}

func (g *StripeGateway) CreateSession(_ context.Context, order *model.Order) (*CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(order.Items)+1)
	for _, item := range order.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(toMinorUnits(item.Price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.ItemName),
				},
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}
	if order.DeliveryFee > 0 {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(toMinorUnits(order.DeliveryFee)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Delivery fee"),
				},
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(g.publicBaseURL + "/api/user/orders/" + order.Token + "/pay/online/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.publicBaseURL + "/api/user/orders/" + order.Token),
	}
	params.AddMetadata("order_id", strconv.FormatInt(order.ID, 10))
	params.AddMetadata("user_id", strconv.FormatInt(order.UserID, 10))
	params.AddMetadata("token", order.Token)

	s, err := g.newSession(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &CheckoutSession{ID: s.ID, RedirectURL: s.URL}, nil
}

func (g *StripeGateway) FetchSession(_ context.Context, sessionID string) (*SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("payment_intent")
	s, err := g.fetchSession(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("fetch checkout session: %w", err)
	}
	status := &SessionStatus{
		ID:   s.ID,
		Paid: s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
	if s.PaymentIntent != nil {
		status.TransactionID = s.PaymentIntent.ID
	}
	if raw, err := json.Marshal(s); err == nil {
		status.Raw = raw
	}
	return status, nil
}

func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if g.webhookSecret == "" {
		return parseUnsigned(payload)
	}
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedEvent, err)
	}
	if event.Type != "checkout.session.completed" {
		return &WebhookEvent{Raw: payload}, nil
	}
	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedEvent, err)
	}
	evt := &WebhookEvent{
		SessionID: s.ID,
		Completed: s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Raw:       payload,
	}
	if s.PaymentIntent != nil {
		evt.TransactionID = s.PaymentIntent.ID
	}
	return evt, nil
}

func parseUnsigned(payload []byte) (*WebhookEvent, error) {
	var body struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID            string `json:"id"`
				PaymentStatus string `json:"payment_status"`
				PaymentIntent string `json:"payment_intent"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedEvent, err)
	}
	if body.Type != "checkout.session.completed" {
		return &WebhookEvent{Raw: payload}, nil
	}
	if body.Data.Object.ID == "" {
		return nil, ErrMalformedEvent
	}
	return &WebhookEvent{
		SessionID:     body.Data.Object.ID,
		Completed:     body.Data.Object.PaymentStatus == "paid",
		TransactionID: body.Data.Object.PaymentIntent,
		Raw:           payload,
	}, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
