package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	domainerrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/domain/repository"
)

const listLimit = 6

// Reply is what the bot says back, with an intent tag for client analytics.
type Reply struct {
	Response     string       `json:"response"`
	Intent       string       `json:"intent"`
	QuickReplies []QuickReply `json:"quick_replies"`
}

// Bot answers free-form questions using a keyword rule table backed by live
// menu, order and wallet data. Matching tolerates typos via edit distance.
type Bot struct {
	menu    repository.MenuRepository
	orders  repository.OrderRepository
	wallets repository.WalletRepository
	logger  *slog.Logger

	pick func(n int) int
}

func New(menu repository.MenuRepository, orders repository.OrderRepository, wallets repository.WalletRepository, logger *slog.Logger) *Bot {
	return &Bot{
		menu:    menu,
		orders:  orders,
		wallets: wallets,
		logger:  logger,
		pick:    rand.Intn,
	}
}

var (
	tokenPattern  = regexp.MustCompile(`(?i)tkn-[a-z0-9]+`)
	budgetPattern = regexp.MustCompile(`(?:under|below|less than|within|upto|up to)\s*(?:₹|rs\.?|inr)?\s*(\d+)`)
)

// Answer resolves one user message into a reply. It never fails the request
// for data errors; those degrade into a generic answer.
func (b *Bot) Answer(ctx context.Context, userID int64, message string) Reply {
	lower := strings.ToLower(strings.TrimSpace(message))
	words := strings.Fields(lower)

	if m := tokenPattern.FindString(lower); m != "" {
		if reply, ok := b.orderLookup(ctx, userID, strings.ToUpper(m)); ok {
			return reply
		}
	}

	if containsAny(lower, "balance", "wallet balance", "my wallet", "my balance", "wallet money") {
		return b.walletBalance(ctx, userID)
	}

	if containsAny(lower, "my order", "order status", "track order", "where is my", "check order", "active order") {
		return b.trackOrders(ctx, userID)
	}

	if m := budgetPattern.FindStringSubmatch(lower); m != nil {
		maxPrice, _ := strconv.ParseFloat(m[1], 64)
		return b.budgetItems(ctx, maxPrice)
	}

	if r := matchRule(lower, words); r != nil {
		return b.resolve(ctx, userID, r)
	}

	if r := fuzzyMatchRule(words); r != nil {
		return b.resolve(ctx, userID, r)
	}

	return Reply{
		Response:     fallbackResponses[b.pick(len(fallbackResponses))],
		Intent:       "unknown",
		QuickReplies: fallbackReplies,
	}
}

func matchRule(lower string, words []string) *rule {
	for i := range rules {
		for _, kw := range rules[i].keywords {
			if strings.Contains(kw, " ") {
				if strings.Contains(lower, kw) {
					return &rules[i]
				}
				continue
			}
			for _, w := range words {
				if w == kw {
					return &rules[i]
				}
			}
			if len(kw) > 4 && strings.Contains(lower, kw) {
				return &rules[i]
			}
		}
	}
	return nil
}

func fuzzyMatchRule(words []string) *rule {
	var keywords []string
	byKeyword := make(map[string]*rule)
	for i := range rules {
		for _, kw := range rules[i].keywords {
			keywords = append(keywords, kw)
			byKeyword[kw] = &rules[i]
		}
	}
	for _, w := range words {
		if len(w) < 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if kw := closestKeyword(w, keywords); kw != "" {
			return byKeyword[kw]
		}
	}
	return nil
}

func (b *Bot) resolve(ctx context.Context, userID int64, r *rule) Reply {
	switch r.intent {
	case "menu_overview":
		return b.menuOverview(ctx)
	case "special_query":
		return b.specials(ctx)
	case "veg_query":
		return b.dietItems(ctx, true)
	case "nonveg_query":
		return b.dietItems(ctx, false)
	case "recommendation":
		return b.popular(ctx)
	case "price_query":
		return b.priceRange(ctx)
	case "category_list":
		return b.categoryList(ctx)
	case "track_query":
		return b.trackOrders(ctx, userID)
	}
	return Reply{
		Response:     r.responses[b.pick(len(r.responses))],
		Intent:       r.intent,
		QuickReplies: r.quickReplies,
	}
}

func (b *Bot) menuOverview(ctx context.Context) Reply {
	categories, err := b.menu.Categories(ctx)
	if err != nil {
		return b.degraded(err, "menu_overview", "Our menu is being updated! Check back soon.")
	}
	var lines []string
	var replies []QuickReply
	total := 0
	for _, cat := range categories {
		available := 0
		for _, item := range cat.Items {
			if item.IsAvailable {
				available++
			}
		}
		if available == 0 {
			continue
		}
		total += available
		lines = append(lines, fmt.Sprintf("%s - %d items", cat.Name, available))
		if len(replies) < 4 {
			replies = append(replies, QuickReply{Label: cat.Name, Message: "Show " + cat.Name + " items"})
		}
	}
	if len(lines) == 0 {
		return Reply{Response: "Our menu is being updated! Check back soon.", Intent: "menu_overview"}
	}
	return Reply{
		Response:     fmt.Sprintf("Our menu (%d items available):\n%s\n\nAsk about a category to see its items!", total, strings.Join(lines, "\n")),
		Intent:       "menu_overview",
		QuickReplies: replies,
	}
}

func (b *Bot) specials(ctx context.Context) Reply {
	items, err := b.menu.Specials(ctx)
	if err != nil {
		return b.degraded(err, "special_query", "Check the menu page for today's specials!")
	}
	if len(items) == 0 {
		return Reply{
			Response:     "No specific specials today, but our regular menu is full of delights!",
			Intent:       "special_query",
			QuickReplies: []QuickReply{menuReply, popularReply},
		}
	}
	return Reply{
		Response:     "Today's specials:\n" + formatItems(items, listLimit),
		Intent:       "special_query",
		QuickReplies: []QuickReply{popularReply},
	}
}

func (b *Bot) dietItems(ctx context.Context, veg bool) Reply {
	intent := "veg_query"
	label := "Vegetarian items"
	if !veg {
		intent = "nonveg_query"
		label = "Non-veg items"
	}
	items, err := b.menu.Vegetarian(ctx, veg, listLimit)
	if err != nil {
		return b.degraded(err, intent, "Check the diet filter on the menu page!")
	}
	if len(items) == 0 {
		return Reply{Response: "Nothing in that category right now.", Intent: intent, QuickReplies: []QuickReply{menuReply}}
	}
	return Reply{
		Response:     fmt.Sprintf("%s:\n%s", label, formatItems(items, listLimit)),
		Intent:       intent,
		QuickReplies: []QuickReply{menuReply},
	}
}

func (b *Bot) popular(ctx context.Context) Reply {
	items, err := b.menu.Popular(ctx, 5)
	if err != nil {
		return b.degraded(err, "recommendation", "Check our menu page for the best items!")
	}
	if len(items) == 0 {
		return Reply{Response: "Check our menu page for the best items!", Intent: "recommendation", QuickReplies: []QuickReply{menuReply}}
	}
	return Reply{
		Response:     "Most popular:\n" + formatItems(items, 5),
		Intent:       "recommendation",
		QuickReplies: []QuickReply{specialsReply},
	}
}

func (b *Bot) priceRange(ctx context.Context) Reply {
	prices, err := b.menu.Prices(ctx)
	if err != nil || prices == nil || prices.Max == 0 {
		return b.degraded(err, "price_query", "Check our menu page for prices!")
	}
	return Reply{
		Response: fmt.Sprintf("Items range from ₹%.0f to ₹%.0f. Ask me about a specific item for its price!", prices.Min, prices.Max),
		Intent:   "price_query",
		QuickReplies: []QuickReply{
			{Label: "Under ₹50", Message: "Show items under 50"},
			{Label: "Under ₹100", Message: "Show items under 100"},
		},
	}
}

func (b *Bot) categoryList(ctx context.Context) Reply {
	categories, err := b.menu.Categories(ctx)
	if err != nil || len(categories) == 0 {
		return b.degraded(err, "category_list", "Categories are being set up!")
	}
	var lines []string
	var replies []QuickReply
	for _, cat := range categories {
		lines = append(lines, fmt.Sprintf("%s (%d items)", cat.Name, len(cat.Items)))
		if len(replies) < 4 {
			replies = append(replies, QuickReply{Label: cat.Name, Message: "Show " + cat.Name + " items"})
		}
	}
	return Reply{
		Response:     "Categories:\n" + strings.Join(lines, "\n"),
		Intent:       "category_list",
		QuickReplies: replies,
	}
}

func (b *Bot) budgetItems(ctx context.Context, maxPrice float64) Reply {
	items, err := b.menu.ItemsUnder(ctx, maxPrice, listLimit)
	if err != nil {
		return b.degraded(err, "budget_query", "Check the menu page for prices!")
	}
	if len(items) == 0 {
		return Reply{
			Response: fmt.Sprintf("No items found under ₹%.0f. Try a higher budget?", maxPrice),
			Intent:   "budget_query",
		}
	}
	return Reply{
		Response:     fmt.Sprintf("Items under ₹%.0f:\n%s", maxPrice, formatItems(items, listLimit)),
		Intent:       "budget_query",
		QuickReplies: []QuickReply{menuReply, popularReply},
	}
}

func (b *Bot) trackOrders(ctx context.Context, userID int64) Reply {
	orders, err := b.orders.ListByUser(ctx, userID, 10, 0)
	if err != nil {
		return b.degraded(err, "track_query", "Could not fetch your orders. Try the My Orders page.")
	}
	var active []model.Order
	for _, o := range orders {
		if !o.Terminal() {
			active = append(active, o)
		}
	}
	if len(active) == 0 {
		if len(orders) > 0 {
			last := orders[0]
			return Reply{
				Response: fmt.Sprintf("No active orders right now.\nYour last order was %s (%s) - ₹%.2f", last.Token, last.Status, last.TotalAmount),
				Intent:   "track_query",
				QuickReplies: []QuickReply{
					{Label: "Order Now", Message: "Show me the menu"},
				},
			}
		}
		return Reply{
			Response:     "You haven't placed any orders yet! Ready to order?",
			Intent:       "track_query",
			QuickReplies: []QuickReply{menuReply},
		}
	}
	if len(active) > 3 {
		active = active[:3]
	}
	var lines []string
	for _, o := range active {
		var items []string
		for i, it := range o.Items {
			if i == 3 {
				break
			}
			items = append(items, fmt.Sprintf("%dx %s", it.Quantity, it.ItemName))
		}
		lines = append(lines, fmt.Sprintf("%s - %s\n  Items: %s\n  Total: ₹%.2f", o.Token, o.Status, strings.Join(items, ", "), o.TotalAmount))
	}
	return Reply{
		Response:     "Your active orders:\n" + strings.Join(lines, "\n"),
		Intent:       "track_query",
		QuickReplies: []QuickReply{menuReply},
	}
}

func (b *Bot) orderLookup(ctx context.Context, userID int64, token string) (Reply, bool) {
	order, err := b.orders.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return Reply{
				Response: fmt.Sprintf("No order found with token %s. Check the My Orders page.", token),
				Intent:   "order_lookup",
			}, true
		}
		b.logger.Error("chatbot order lookup failed", "error", err)
		return Reply{}, false
	}
	if order.UserID != userID {
		return Reply{
			Response: fmt.Sprintf("No order found with token %s. Check the My Orders page.", token),
			Intent:   "order_lookup",
		}, true
	}
	var lines []string
	for _, it := range order.Items {
		lines = append(lines, fmt.Sprintf("  %dx %s (₹%.2f)", it.Quantity, it.ItemName, it.Price))
	}
	return Reply{
		Response: fmt.Sprintf("Order %s\nStatus: %s\nItems:\n%s\nTotal: ₹%.2f\nPlaced: %s",
			order.Token, order.Status, strings.Join(lines, "\n"), order.TotalAmount,
			order.CreatedAt.Format("02 Jan, 3:04 PM")),
		Intent:       "order_lookup",
		QuickReplies: []QuickReply{ordersReply, menuReply},
	}, true
}

func (b *Bot) walletBalance(ctx context.Context, userID int64) Reply {
	balance, err := b.wallets.Balance(ctx, userID)
	if err != nil {
		return b.degraded(err, "wallet_query", "Could not fetch your wallet balance. Try the wallet page.")
	}
	return Reply{
		Response: fmt.Sprintf("Your wallet balance is ₹%.2f", balance),
		Intent:   "wallet_query",
		QuickReplies: []QuickReply{
			{Label: "Order Now", Message: "Show me the menu"},
			ordersReply,
		},
	}
}

func (b *Bot) degraded(err error, intent, response string) Reply {
	if err != nil {
		b.logger.Error("chatbot data lookup failed", "intent", intent, "error", err)
	}
	return Reply{Response: response, Intent: intent}
}

func formatItems(items []model.MenuItem, limit int) string {
	var lines []string
	for i, item := range items {
		if i == limit {
			break
		}
		diet := "veg"
		if !item.IsVegetarian {
			diet = "non-veg"
		}
		lines = append(lines, fmt.Sprintf("%s - ₹%.2f (%s)", item.Name, item.Price, diet))
	}
	return strings.Join(lines, "\n")
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
