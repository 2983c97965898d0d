package chatbot

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/test"
)

func testBot(menu *test.MenuRepositoryStub, orders *test.OrderRepositoryStub, wallets *test.WalletRepositoryStub) *Bot {
	if menu == nil {
		menu = &test.MenuRepositoryStub{}
	}
	if orders == nil {
		orders = &test.OrderRepositoryStub{}
	}
	if wallets == nil {
		wallets = test.NewWalletRepositoryStub()
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := New(menu, orders, wallets, logger)
	b.pick = func(int) int { return 0 }
	return b
}

func TestAnswerGreeting(t *testing.T) {
	b := testBot(nil, nil, nil)
	reply := b.Answer(context.Background(), 1, "Hello there")
	if reply.Intent != "greeting" {
		t.Fatalf("unexpected intent: %s", reply.Intent)
	}
	if len(reply.QuickReplies) == 0 {
		t.Fatal("expected quick replies")
	}
}

func TestAnswerFuzzyTypo(t *testing.T) {
	menu := &test.MenuRepositoryStub{Items: []model.MenuItem{
		{ID: 1, Name: "Veg Thali", Price: 60, IsAvailable: true, IsTodaysSpecial: true, IsVegetarian: true},
	}}
	b := testBot(menu, nil, nil)
	reply := b.Answer(context.Background(), 1, "what are todays specails")
	if reply.Intent != "special_query" {
		t.Fatalf("unexpected intent: %s", reply.Intent)
	}
	if !strings.Contains(reply.Response, "Veg Thali") {
		t.Fatalf("unexpected response: %s", reply.Response)
	}
}

func TestAnswerFallback(t *testing.T) {
	b := testBot(nil, nil, nil)
	reply := b.Answer(context.Background(), 1, "xyzzy plugh")
	if reply.Intent != "unknown" {
		t.Fatalf("unexpected intent: %s", reply.Intent)
	}
	if reply.Response != fallbackResponses[0] {
		t.Fatalf("unexpected response: %s", reply.Response)
	}
}

func TestAnswerWalletBalance(t *testing.T) {
	wallets := test.NewWalletRepositoryStub()
	wallets.Balances[7] = 420.5
	b := testBot(nil, nil, wallets)
	reply := b.Answer(context.Background(), 7, "what's my balance?")
	if reply.Intent != "wallet_query" {
		t.Fatalf("unexpected intent: %s", reply.Intent)
	}
	if !strings.Contains(reply.Response, "420.50") {
		t.Fatalf("unexpected response: %s", reply.Response)
	}
}

func TestAnswerBudgetQuery(t *testing.T) {
	menu := &test.MenuRepositoryStub{Items: []model.MenuItem{
		{ID: 1, Name: "Samosa", Price: 15, IsAvailable: true, IsVegetarian: true},
		{ID: 2, Name: "Paneer Roll", Price: 80, IsAvailable: true, IsVegetarian: true},
	}}
	b := testBot(menu, nil, nil)
	reply := b.Answer(context.Background(), 1, "show items under 50")
	if reply.Intent != "budget_query" {
		t.Fatalf("unexpected intent: %s", reply.Intent)
	}
	if !strings.Contains(reply.Response, "Samosa") || strings.Contains(reply.Response, "Paneer Roll") {
		t.Fatalf("unexpected response: %s", reply.Response)
	}
}

func TestAnswerTokenLookup(t *testing.T) {
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{
			ID: 1, UserID: 7, Token: "TKN-ABC123", Status: model.OrderStatusPreparing,
			TotalAmount: 90,
			Items:       []model.OrderItem{{ItemName: "Dosa", Price: 45, Quantity: 2}},
		},
	}}
	b := testBot(nil, orders, nil)

	reply := b.Answer(context.Background(), 7, "where is tkn-abc123?")
	if reply.Intent != "order_lookup" {
		t.Fatalf("unexpected intent: %s", reply.Intent)
	}
	if !strings.Contains(reply.Response, "TKN-ABC123") || !strings.Contains(reply.Response, "preparing") {
		t.Fatalf("unexpected response: %s", reply.Response)
	}

	// another user must not see the order
	reply = b.Answer(context.Background(), 8, "where is tkn-abc123?")
	if !strings.Contains(reply.Response, "No order found") {
		t.Fatalf("expected hidden order, got: %s", reply.Response)
	}
}

func TestAnswerTrackActiveOrders(t *testing.T) {
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{ID: 1, UserID: 7, Token: "TKN-AAA111", Status: model.OrderStatusReady, TotalAmount: 50,
			Items: []model.OrderItem{{ItemName: "Chai", Quantity: 2}}},
		{ID: 2, UserID: 7, Token: "TKN-BBB222", Status: model.OrderStatusDelivered, TotalAmount: 120},
	}}
	b := testBot(nil, orders, nil)
	reply := b.Answer(context.Background(), 7, "track order")
	if reply.Intent != "track_query" {
		t.Fatalf("unexpected intent: %s", reply.Intent)
	}
	if !strings.Contains(reply.Response, "TKN-AAA111") {
		t.Fatalf("expected active order, got: %s", reply.Response)
	}
	if strings.Contains(reply.Response, "TKN-BBB222") {
		t.Fatalf("terminal order leaked into: %s", reply.Response)
	}
}

func TestAnswerMenuOverview(t *testing.T) {
	menu := &test.MenuRepositoryStub{CategoriesFn: func(context.Context) ([]model.Category, error) {
		return []model.Category{
			{ID: 1, Name: "Snacks", IsActive: true, Items: []model.MenuItem{
				{ID: 1, Name: "Samosa", IsAvailable: true},
				{ID: 2, Name: "Kachori", IsAvailable: false},
			}},
		}, nil
	}}
	b := testBot(menu, nil, nil)
	reply := b.Answer(context.Background(), 1, "show me the menu")
	if reply.Intent != "menu_overview" {
		t.Fatalf("unexpected intent: %s", reply.Intent)
	}
	if !strings.Contains(reply.Response, "Snacks - 1 items") {
		t.Fatalf("unexpected response: %s", reply.Response)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"menu", "menu", 0},
		{"menu", "meny", 1},
		{"kitten", "sitting", 3},
		{"", "abc", 3},
	}
	for _, tc := range cases {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestClosestKeyword(t *testing.T) {
	keywords := []string{"menu", "special", "wallet"}
	if got := closestKeyword("specail", keywords); got != "special" {
		t.Fatalf("unexpected match: %q", got)
	}
	if got := closestKeyword("zzzzzz", keywords); got != "" {
		t.Fatalf("expected no match, got %q", got)
	}
}
