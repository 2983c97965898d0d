package app

import (
	"context"
	"time"

	"github.com/campusbites/canteen/internal/adapter/stripegw"
	"github.com/campusbites/canteen/internal/chatbot"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/usecase"
)

// CanteenFacade is the application surface consumed by the HTTP layer and
// the reconciliation worker.
type CanteenFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	wallet   *usecase.WalletUseCase
	menu     *usecase.MenuUseCase
	feedback *usecase.FeedbackUseCase
	bot      *chatbot.Bot
	gateway  stripegw.Gateway
}

func NewCanteenFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	wallet *usecase.WalletUseCase,
	menu *usecase.MenuUseCase,
	feedback *usecase.FeedbackUseCase,
	bot *chatbot.Bot,
	gateway stripegw.Gateway,
) *CanteenFacade {
	return &CanteenFacade{
		auth:     auth,
		orders:   orders,
		payments: payments,
		wallet:   wallet,
		menu:     menu,
		feedback: feedback,
		bot:      bot,
		gateway:  gateway,
	}
}

func (f *CanteenFacade) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	return f.auth.Register(ctx, in)
}

func (f *CanteenFacade) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *CanteenFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *CanteenFacade) RequestOTP(ctx context.Context, email string) error {
	return f.auth.RequestOTP(ctx, email)
}

func (f *CanteenFacade) VerifyOTP(ctx context.Context, email, code string) error {
	return f.auth.VerifyOTP(ctx, email, code)
}

func (f *CanteenFacade) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *CanteenFacade) MenuCategories(ctx context.Context) ([]model.Category, error) {
	return f.menu.Categories(ctx)
}

func (f *CanteenFacade) MenuSpecials(ctx context.Context) ([]model.MenuItem, error) {
	return f.menu.Specials(ctx)
}

func (f *CanteenFacade) ToggleMenuItem(ctx context.Context, id int64) (*model.MenuItem, error) {
	return f.menu.ToggleAvailability(ctx, id)
}

func (f *CanteenFacade) PlaceOrder(ctx context.Context, userID int64, in usecase.PlaceOrderInput) (*model.Order, error) {
	return f.orders.Place(ctx, userID, in)
}

func (f *CanteenFacade) Order(ctx context.Context, userID int64, token string) (*model.Order, error) {
	return f.orders.Get(ctx, userID, token)
}

func (f *CanteenFacade) Orders(ctx context.Context, userID int64, limit, offset int) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID, limit, offset)
}

func (f *CanteenFacade) ActiveOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListActive(ctx)
}

func (f *CanteenFacade) AdvanceOrder(ctx context.Context, token string, target model.OrderStatus) (*model.Order, error) {
	return f.orders.Transition(ctx, token, target)
}

func (f *CanteenFacade) CancelOrder(ctx context.Context, userID int64, token string) (*model.Order, bool, error) {
	return f.orders.Cancel(ctx, userID, token)
}

func (f *CanteenFacade) PayCash(ctx context.Context, userID int64, token string) (*model.Order, error) {
	return f.payments.PayCash(ctx, userID, token)
}

func (f *CanteenFacade) PayWallet(ctx context.Context, userID int64, token string) (*model.Order, error) {
	return f.payments.PayWallet(ctx, userID, token)
}

func (f *CanteenFacade) StartOnlinePayment(ctx context.Context, userID int64, token string) (*stripegw.CheckoutSession, error) {
	return f.payments.StartOnline(ctx, userID, token)
}

func (f *CanteenFacade) ConfirmOnlinePayment(ctx context.Context, userID int64, token, sessionID string) (*model.Order, error) {
	return f.payments.ConfirmCallback(ctx, userID, token, sessionID)
}

func (f *CanteenFacade) HandleGatewayWebhook(ctx context.Context, payload []byte, signature string) error {
	return f.payments.HandleWebhook(ctx, payload, signature)
}

func (f *CanteenFacade) OrderPayments(ctx context.Context, userID int64, token string) ([]model.Payment, error) {
	return f.payments.ListByOrder(ctx, userID, token)
}

func (f *CanteenFacade) WalletTopUp(ctx context.Context, userID int64, amount float64) (float64, error) {
	return f.wallet.TopUp(ctx, userID, amount)
}

func (f *CanteenFacade) WalletSummary(ctx context.Context, userID int64) (*model.WalletSummary, error) {
	return f.wallet.Summary(ctx, userID)
}

func (f *CanteenFacade) WalletTransactions(ctx context.Context, userID int64, filter model.WalletTxnType, limit, offset int) ([]model.WalletTransaction, error) {
	return f.wallet.Transactions(ctx, userID, filter, limit, offset)
}

func (f *CanteenFacade) SubmitFeedback(ctx context.Context, userID int64, subject, message string, rating int) (*model.Feedback, error) {
	return f.feedback.Submit(ctx, userID, subject, message, rating)
}

func (f *CanteenFacade) FeedbackHistory(ctx context.Context, userID int64) ([]model.Feedback, error) {
	return f.feedback.ListByUser(ctx, userID)
}

func (f *CanteenFacade) TriageFeedback(ctx context.Context, staffID, feedbackID int64, target model.FeedbackStatus, response string) (*model.Feedback, error) {
	return f.feedback.Triage(ctx, staffID, feedbackID, target, response)
}

func (f *CanteenFacade) Chat(ctx context.Context, userID int64, message string) chatbot.Reply {
	return f.bot.Answer(ctx, userID, message)
}

// The reconciliation worker drives these.

func (f *CanteenFacade) PendingSessions(ctx context.Context, olderThan time.Duration, limit int) ([]model.Payment, error) {
	return f.payments.PendingSessions(ctx, olderThan, limit)
}

func (f *CanteenFacade) FetchSession(ctx context.Context, sessionID string) (*stripegw.SessionStatus, error) {
	return f.gateway.FetchSession(ctx, sessionID)
}

func (f *CanteenFacade) CompleteSession(ctx context.Context, sessionID, transactionID string, response []byte) (bool, error) {
	return f.payments.CompleteSession(ctx, sessionID, transactionID, response)
}

func (f *CanteenFacade) FailSession(ctx context.Context, sessionID, reason string) error {
	return f.payments.FailSession(ctx, sessionID, reason)
}
