package handlers

import (
	"context"

	"github.com/campusbites/canteen/internal/adapter/stripegw"
	"github.com/campusbites/canteen/internal/chatbot"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error)
	Authenticate(ctx context.Context, login, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// MenuFacade exposes the menu surface.
type MenuFacade interface {
	MenuCategories(ctx context.Context) ([]model.Category, error)
	MenuSpecials(ctx context.Context) ([]model.MenuItem, error)
	ToggleMenuItem(ctx context.Context, id int64) (*model.MenuItem, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID int64, in usecase.PlaceOrderInput) (*model.Order, error)
	Order(ctx context.Context, userID int64, token string) (*model.Order, error)
	Orders(ctx context.Context, userID int64, limit, offset int) ([]model.Order, error)
	ActiveOrders(ctx context.Context) ([]model.Order, error)
	AdvanceOrder(ctx context.Context, token string, target model.OrderStatus) (*model.Order, error)
	CancelOrder(ctx context.Context, userID int64, token string) (*model.Order, bool, error)
}

// PaymentFacade covers the three payment paths and gateway callbacks.
type PaymentFacade interface {
	PayCash(ctx context.Context, userID int64, token string) (*model.Order, error)
	PayWallet(ctx context.Context, userID int64, token string) (*model.Order, error)
	StartOnlinePayment(ctx context.Context, userID int64, token string) (*stripegw.CheckoutSession, error)
	ConfirmOnlinePayment(ctx context.Context, userID int64, token, sessionID string) (*model.Order, error)
	HandleGatewayWebhook(ctx context.Context, payload []byte, signature string) error
	OrderPayments(ctx context.Context, userID int64, token string) ([]model.Payment, error)
}

// WalletFacade provides wallet ledger operations.
type WalletFacade interface {
	WalletTopUp(ctx context.Context, userID int64, amount float64) (float64, error)
	WalletSummary(ctx context.Context, userID int64) (*model.WalletSummary, error)
	WalletTransactions(ctx context.Context, userID int64, filter model.WalletTxnType, limit, offset int) ([]model.WalletTransaction, error)
}

// FeedbackFacade covers feedback submission and triage.
type FeedbackFacade interface {
	SubmitFeedback(ctx context.Context, userID int64, subject, message string, rating int) (*model.Feedback, error)
	FeedbackHistory(ctx context.Context, userID int64) ([]model.Feedback, error)
	TriageFeedback(ctx context.Context, staffID, feedbackID int64, target model.FeedbackStatus, response string) (*model.Feedback, error)
}

// ChatFacade answers assistant messages.
type ChatFacade interface {
	Chat(ctx context.Context, userID int64, message string) chatbot.Reply
}

// CanteenFacade aggregates the full set of operations used across handlers.
type CanteenFacade interface {
	AuthFacade
	MenuFacade
	OrderFacade
	PaymentFacade
	WalletFacade
	FeedbackFacade
	ChatFacade
}
