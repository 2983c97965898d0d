package stripegw

import (
	"context"
	"errors"
	"testing"

	stripe "github.com/stripe/stripe-go/v79"

	"github.com/campusbites/canteen/internal/domain/model"
)

func testGateway() *StripeGateway {
	return &StripeGateway{publicBaseURL: "https://canteen.example"}
}

func TestCreateSessionLineItems(t *testing.T) {
	g := testGateway()
	var captured *stripe.CheckoutSessionParams
	g.newSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		captured = params
		return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
	}

	order := &model.Order{
		ID:          7,
		UserID:      3,
		Token:       "TKN-XYZ001",
		DeliveryFee: 10,
		Items: []model.OrderItem{
			{ItemName: "Samosa", Price: 15, Quantity: 4},
			{ItemName: "Chai", Price: 12.5, Quantity: 2},
		},
	}
	sess, err := g.CreateSession(context.Background(), order)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if sess.ID != "cs_test_1" || sess.RedirectURL == "" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if len(captured.LineItems) != 3 {
		t.Fatalf("expected 3 line items, got %d", len(captured.LineItems))
	}
	if got := *captured.LineItems[0].PriceData.UnitAmount; got != 1500 {
		t.Fatalf("unexpected unit amount: %d", got)
	}
	if got := *captured.LineItems[1].PriceData.UnitAmount; got != 1250 {
		t.Fatalf("unexpected unit amount: %d", got)
	}
	if got := *captured.LineItems[2].PriceData.ProductData.Name; got != "Delivery fee" {
		t.Fatalf("unexpected fee line: %s", got)
	}
	if captured.Metadata["token"] != "TKN-XYZ001" || captured.Metadata["order_id"] != "7" {
		t.Fatalf("unexpected metadata: %v", captured.Metadata)
	}
}

func TestCreateSessionCallbackURLs(t *testing.T) {
	g := testGateway()
	var captured *stripe.CheckoutSessionParams
	g.newSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		captured = params
		return &stripe.CheckoutSession{ID: "cs_test_3"}, nil
	}

	order := &model.Order{ID: 7, UserID: 3, Token: "TKN-AAA111",
		Items: []model.OrderItem{{ItemName: "Idli", Price: 20, Quantity: 1}}}
	if _, err := g.CreateSession(context.Background(), order); err != nil {
		t.Fatalf("create session: %v", err)
	}

	wantSuccess := "https://canteen.example/api/user/orders/TKN-AAA111/pay/online/success?session_id={CHECKOUT_SESSION_ID}"
	if got := *captured.SuccessURL; got != wantSuccess {
		t.Fatalf("unexpected success url: %s", got)
	}
	wantCancel := "https://canteen.example/api/user/orders/TKN-AAA111"
	if got := *captured.CancelURL; got != wantCancel {
		t.Fatalf("unexpected cancel url: %s", got)
	}
}

func TestCreateSessionSkipsZeroFee(t *testing.T) {
	g := testGateway()
	g.newSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		if len(params.LineItems) != 1 {
			t.Fatalf("expected 1 line item, got %d", len(params.LineItems))
		}
		return &stripe.CheckoutSession{ID: "cs_test_2"}, nil
	}
	order := &model.Order{Items: []model.OrderItem{{ItemName: "Idli", Price: 20, Quantity: 1}}}
	if _, err := g.CreateSession(context.Background(), order); err != nil {
		t.Fatalf("create session: %v", err)
	}
}

func TestFetchSessionPaid(t *testing.T) {
	g := testGateway()
	g.fetchSession = func(id string, _ *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return &stripe.CheckoutSession{
			ID:            id,
			PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
			PaymentIntent: &stripe.PaymentIntent{ID: "pi_42"},
		}, nil
	}
	status, err := g.FetchSession(context.Background(), "cs_test_3")
	if err != nil {
		t.Fatalf("fetch session: %v", err)
	}
	if !status.Paid || status.TransactionID != "pi_42" {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestParseWebhookUnsignedMode(t *testing.T) {
	g := testGateway()

	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_1","payment_status":"paid","payment_intent":"pi_9"}}}`)
	evt, err := g.ParseWebhook(payload, "")
	if err != nil {
		t.Fatalf("parse webhook: %v", err)
	}
	if evt.SessionID != "cs_1" || !evt.Completed || evt.TransactionID != "pi_9" {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestParseWebhookIgnoresOtherEvents(t *testing.T) {
	g := testGateway()
	evt, err := g.ParseWebhook([]byte(`{"type":"invoice.paid","data":{"object":{"id":"in_1"}}}`), "")
	if err != nil {
		t.Fatalf("parse webhook: %v", err)
	}
	if evt.SessionID != "" || evt.Completed {
		t.Fatalf("expected ignored event, got %+v", evt)
	}
}

func TestParseWebhookMalformed(t *testing.T) {
	g := testGateway()
	for _, payload := range []string{
		"not json",
		`{"type":"checkout.session.completed","data":{"object":{}}}`,
	} {
		if _, err := g.ParseWebhook([]byte(payload), ""); !errors.Is(err, ErrMalformedEvent) {
			t.Fatalf("expected ErrMalformedEvent for %q, got %v", payload, err)
		}
	}
}

func TestParseWebhookSignedRejectsBadSignature(t *testing.T) {
	g := testGateway()
	g.webhookSecret = "whsec_test"
	if _, err := g.ParseWebhook([]byte(`{}`), "bogus"); !errors.Is(err, ErrMalformedEvent) {
		t.Fatalf("expected ErrMalformedEvent, got %v", err)
	}
}
