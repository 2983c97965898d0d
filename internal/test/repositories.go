package test

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *user
	stored.ID = s.Next
	s.Next++
	s.Users[stored.Login] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MarkEmailVerified flips the flag for a stored user.
func (s *UserRepositoryStub) MarkEmailVerified(ctx context.Context, email string) error {
	if s.Err != nil {
		return s.Err
	}
	for _, user := range s.Users {
		if user.Email == email {
			user.EmailVerified = true
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// MenuRepositoryStub lets tests control menu data.
type MenuRepositoryStub struct {
	CategoriesFn         func(context.Context) ([]model.Category, error)
	SpecialsFn           func(context.Context) ([]model.MenuItem, error)
	GetItemFn            func(context.Context, int64) (*model.MenuItem, error)
	GetItemsFn           func(context.Context, []int64) ([]model.MenuItem, error)
	ToggleAvailabilityFn func(context.Context, int64) (*model.MenuItem, error)
	ItemsUnderFn         func(context.Context, float64, int) ([]model.MenuItem, error)
	VegetarianFn         func(context.Context, bool, int) ([]model.MenuItem, error)
	PopularFn            func(context.Context, int) ([]model.MenuItem, error)
	PricesFn             func(context.Context) (*model.PriceRange, error)

	Items []model.MenuItem
}

func (s *MenuRepositoryStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return nil, nil
}

func (s *MenuRepositoryStub) Specials(ctx context.Context) ([]model.MenuItem, error) {
	if s.SpecialsFn != nil {
		return s.SpecialsFn(ctx)
	}
	var specials []model.MenuItem
	for _, item := range s.Items {
		if item.IsTodaysSpecial && item.IsAvailable {
			specials = append(specials, item)
		}
	}
	return specials, nil
}

func (s *MenuRepositoryStub) GetItem(ctx context.Context, id int64) (*model.MenuItem, error) {
	if s.GetItemFn != nil {
		return s.GetItemFn(ctx, id)
	}
	for _, item := range s.Items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *MenuRepositoryStub) GetItems(ctx context.Context, ids []int64) ([]model.MenuItem, error) {
	if s.GetItemsFn != nil {
		return s.GetItemsFn(ctx, ids)
	}
	var found []model.MenuItem
	for _, id := range ids {
		for _, item := range s.Items {
			if item.ID == id {
				found = append(found, item)
			}
		}
	}
	return found, nil
}

func (s *MenuRepositoryStub) ToggleAvailability(ctx context.Context, id int64) (*model.MenuItem, error) {
	if s.ToggleAvailabilityFn != nil {
		return s.ToggleAvailabilityFn(ctx, id)
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items[i].IsAvailable = !s.Items[i].IsAvailable
			found := s.Items[i]
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *MenuRepositoryStub) ItemsUnder(ctx context.Context, price float64, limit int) ([]model.MenuItem, error) {
	if s.ItemsUnderFn != nil {
		return s.ItemsUnderFn(ctx, price, limit)
	}
	var found []model.MenuItem
	for _, item := range s.Items {
		if item.IsAvailable && item.Price <= price && len(found) < limit {
			found = append(found, item)
		}
	}
	return found, nil
}

func (s *MenuRepositoryStub) Vegetarian(ctx context.Context, veg bool, limit int) ([]model.MenuItem, error) {
	if s.VegetarianFn != nil {
		return s.VegetarianFn(ctx, veg, limit)
	}
	var found []model.MenuItem
	for _, item := range s.Items {
		if item.IsAvailable && item.IsVegetarian == veg && len(found) < limit {
			found = append(found, item)
		}
	}
	return found, nil
}

func (s *MenuRepositoryStub) Popular(ctx context.Context, limit int) ([]model.MenuItem, error) {
	if s.PopularFn != nil {
		return s.PopularFn(ctx, limit)
	}
	if len(s.Items) > limit {
		return s.Items[:limit], nil
	}
	return s.Items, nil
}

func (s *MenuRepositoryStub) Prices(ctx context.Context) (*model.PriceRange, error) {
	if s.PricesFn != nil {
		return s.PricesFn(ctx)
	}
	if len(s.Items) == 0 {
		return &model.PriceRange{}, nil
	}
	pr := &model.PriceRange{Min: s.Items[0].Price, Max: s.Items[0].Price}
	for _, item := range s.Items {
		if item.Price < pr.Min {
			pr.Min = item.Price
		}
		if item.Price > pr.Max {
			pr.Max = item.Price
		}
	}
	return pr, nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetByTokenFn   func(context.Context, string) (*model.Order, error)
	GetByIDFn      func(context.Context, int64) (*model.Order, error)
	ListByUserFn   func(context.Context, int64, int, int) ([]model.Order, error)
	ListActiveFn   func(context.Context) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) error
	CancelFn       func(context.Context, *model.Order) (bool, error)

	Orders      []model.Order
	Next        int64
	UpdateCalls []OrderUpdateCall
}

type OrderUpdateCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// Create assigns an id and token and stores the order.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *order
	stored.ID = s.Next
	stored.Token = fmt.Sprintf("TKN-TST%03d", s.Next)
	stored.CreatedAt = time.Now()
	s.Next++
	s.Orders = append(s.Orders, stored)
	return &stored, nil
}

func (s *OrderRepositoryStub) GetByToken(ctx context.Context, token string) (*model.Order, error) {
	if s.GetByTokenFn != nil {
		return s.GetByTokenFn(ctx, token)
	}
	for _, o := range s.Orders {
		if o.Token == token {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID, limit, offset)
	}
	var found []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			found = append(found, o)
		}
	}
	return found, nil
}

func (s *OrderRepositoryStub) ListActive(ctx context.Context) ([]model.Order, error) {
	if s.ListActiveFn != nil {
		return s.ListActiveFn(ctx)
	}
	var found []model.Order
	for _, o := range s.Orders {
		if !o.Terminal() && o.Status != model.OrderStatusPaymentPending {
			found = append(found, o)
		}
	}
	return found, nil
}

// UpdateStatus records update invocations.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: orderID, Status: status})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = status
		}
	}
	return nil
}

func (s *OrderRepositoryStub) Cancel(ctx context.Context, order *model.Order) (bool, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, order)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == order.ID {
			if !s.Orders[i].CanTransition(model.OrderStatusCancelled) {
				return false, domainErrors.ErrNotCancellable
			}
			s.Orders[i].Status = model.OrderStatusCancelled
		}
	}
	refunded := order.IsPaid && order.PaymentMethod == model.PaymentMethodWallet
	order.Status = model.OrderStatusCancelled
	return refunded, nil
}

// PaymentRepositoryStub tracks reconciliation calls.
type PaymentRepositoryStub struct {
	CreateFn                 func(context.Context, *model.Payment) (*model.Payment, error)
	ListByOrderFn            func(context.Context, int64) ([]model.Payment, error)
	PayWithWalletFn          func(context.Context, *model.Order, string) error
	AttachGatewaySessionFn   func(context.Context, *model.Order, string) (*model.Payment, error)
	CompleteGatewaySessionFn func(context.Context, string, string, []byte) (int64, bool, error)
	FailGatewaySessionFn     func(context.Context, string, string) error
	ListPendingFn            func(context.Context, time.Duration, int) ([]model.Payment, error)

	Payments  []model.Payment
	Completed []string
	Failed    []string
	Next      int64
}

func (s *PaymentRepositoryStub) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, payment)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *payment
	stored.ID = s.Next
	s.Next++
	s.Payments = append(s.Payments, stored)
	return &stored, nil
}

func (s *PaymentRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	if s.ListByOrderFn != nil {
		return s.ListByOrderFn(ctx, orderID)
	}
	var found []model.Payment
	for _, p := range s.Payments {
		if p.OrderID == orderID {
			found = append(found, p)
		}
	}
	return found, nil
}

func (s *PaymentRepositoryStub) PayWithWallet(ctx context.Context, order *model.Order, reference string) error {
	if s.PayWithWalletFn != nil {
		return s.PayWithWalletFn(ctx, order, reference)
	}
	order.IsPaid = true
	order.Status = model.OrderStatusConfirmed
	return nil
}

func (s *PaymentRepositoryStub) AttachGatewaySession(ctx context.Context, order *model.Order, sessionID string) (*model.Payment, error) {
	if s.AttachGatewaySessionFn != nil {
		return s.AttachGatewaySessionFn(ctx, order, sessionID)
	}
	for _, p := range s.Payments {
		if p.GatewaySessionID != nil && *p.GatewaySessionID == sessionID {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	payment := &model.Payment{
		OrderID:          order.ID,
		Amount:           order.TotalAmount,
		Method:           model.PaymentMethodOnline,
		Status:           model.PaymentStatusPending,
		GatewaySessionID: &sessionID,
	}
	return s.Create(ctx, payment)
}

func (s *PaymentRepositoryStub) CompleteGatewaySession(ctx context.Context, sessionID, transactionID string, response []byte) (int64, bool, error) {
	if s.CompleteGatewaySessionFn != nil {
		return s.CompleteGatewaySessionFn(ctx, sessionID, transactionID, response)
	}
	var orderID int64
	for _, p := range s.Payments {
		if p.GatewaySessionID != nil && *p.GatewaySessionID == sessionID {
			orderID = p.OrderID
		}
	}
	if orderID == 0 {
		return 0, false, domainErrors.ErrNotFound
	}
	for _, done := range s.Completed {
		if done == sessionID {
			return orderID, false, nil
		}
	}
	s.Completed = append(s.Completed, sessionID)
	for i := range s.Payments {
		if s.Payments[i].GatewaySessionID != nil && *s.Payments[i].GatewaySessionID == sessionID {
			s.Payments[i].Status = model.PaymentStatusCompleted
			s.Payments[i].TransactionID = transactionID
		}
	}
	return orderID, true, nil
}

func (s *PaymentRepositoryStub) FailGatewaySession(ctx context.Context, sessionID, reason string) error {
	if s.FailGatewaySessionFn != nil {
		return s.FailGatewaySessionFn(ctx, sessionID, reason)
	}
	s.Failed = append(s.Failed, sessionID)
	return nil
}

func (s *PaymentRepositoryStub) ListPendingGatewaySessions(ctx context.Context, olderThan time.Duration, limit int) ([]model.Payment, error) {
	if s.ListPendingFn != nil {
		return s.ListPendingFn(ctx, olderThan, limit)
	}
	var pending []model.Payment
	for _, p := range s.Payments {
		if p.Status == model.PaymentStatusPending && p.GatewaySessionID != nil {
			pending = append(pending, p)
		}
	}
	return pending, nil
}

// WalletRepositoryStub holds balances in a map.
type WalletRepositoryStub struct {
	BalanceFn    func(context.Context, int64) (float64, error)
	TopUpFn      func(context.Context, int64, float64, float64, string) (float64, error)
	ListByUserFn func(context.Context, int64, model.WalletTxnType, int, int) ([]model.WalletTransaction, error)
	SummaryFn    func(context.Context, int64) (*model.WalletSummary, error)

	Balances     map[int64]float64
	Transactions []model.WalletTransaction
}

func NewWalletRepositoryStub() *WalletRepositoryStub {
	return &WalletRepositoryStub{Balances: make(map[int64]float64)}
}

func (s *WalletRepositoryStub) Balance(ctx context.Context, userID int64) (float64, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return s.Balances[userID], nil
}

func (s *WalletRepositoryStub) TopUp(ctx context.Context, userID int64, amount, maxBalance float64, reference string) (float64, error) {
	if s.TopUpFn != nil {
		return s.TopUpFn(ctx, userID, amount, maxBalance, reference)
	}
	if s.Balances == nil {
		s.Balances = make(map[int64]float64)
	}
	if s.Balances[userID]+amount > maxBalance {
		return 0, domainErrors.ErrWalletCapExceeded
	}
	s.Balances[userID] += amount
	s.Transactions = append(s.Transactions, model.WalletTransaction{
		UserID: userID, Amount: amount, Type: model.WalletCredit, ReferenceID: reference,
	})
	return s.Balances[userID], nil
}

func (s *WalletRepositoryStub) ListByUser(ctx context.Context, userID int64, filter model.WalletTxnType, limit, offset int) ([]model.WalletTransaction, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID, filter, limit, offset)
	}
	var found []model.WalletTransaction
	for _, txn := range s.Transactions {
		if txn.UserID != userID {
			continue
		}
		if filter != "" && txn.Type != filter {
			continue
		}
		found = append(found, txn)
	}
	return found, nil
}

func (s *WalletRepositoryStub) Summary(ctx context.Context, userID int64) (*model.WalletSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, userID)
	}
	summary := &model.WalletSummary{Balance: s.Balances[userID]}
	for _, txn := range s.Transactions {
		if txn.UserID != userID {
			continue
		}
		switch txn.Type {
		case model.WalletCredit:
			summary.MonthCredits += txn.Amount
		case model.WalletDebit:
			summary.MonthDebits += txn.Amount
		}
	}
	return summary, nil
}

// FeedbackRepositoryStub stores feedback in-memory.
type FeedbackRepositoryStub struct {
	CreateFn func(context.Context, *model.Feedback) (*model.Feedback, error)
	UpdateFn func(context.Context, *model.Feedback) error

	Items []model.Feedback
	Next  int64
}

func (s *FeedbackRepositoryStub) Create(ctx context.Context, fb *model.Feedback) (*model.Feedback, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, fb)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *fb
	stored.ID = s.Next
	s.Next++
	s.Items = append(s.Items, stored)
	return &stored, nil
}

func (s *FeedbackRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Feedback, error) {
	for _, fb := range s.Items {
		if fb.ID == id {
			found := fb
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *FeedbackRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Feedback, error) {
	var found []model.Feedback
	for _, fb := range s.Items {
		if fb.UserID == userID {
			found = append(found, fb)
		}
	}
	return found, nil
}

func (s *FeedbackRepositoryStub) Update(ctx context.Context, fb *model.Feedback) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, fb)
	}
	for i := range s.Items {
		if s.Items[i].ID == fb.ID {
			s.Items[i] = *fb
		}
	}
	return nil
}

// FactoryStub bundles repository stubs behind the factory interface.
type FactoryStub struct {
	UsersRepo    repository.UserRepository
	MenuRepo     repository.MenuRepository
	OrdersRepo   repository.OrderRepository
	PaymentsRepo repository.PaymentRepository
	WalletsRepo  repository.WalletRepository
	FeedbackRepo repository.FeedbackRepository
}

func (f *FactoryStub) Users() repository.UserRepository        { return f.UsersRepo }
func (f *FactoryStub) Menu() repository.MenuRepository         { return f.MenuRepo }
func (f *FactoryStub) Orders() repository.OrderRepository      { return f.OrdersRepo }
func (f *FactoryStub) Payments() repository.PaymentRepository  { return f.PaymentsRepo }
func (f *FactoryStub) Wallets() repository.WalletRepository    { return f.WalletsRepo }
func (f *FactoryStub) Feedback() repository.FeedbackRepository { return f.FeedbackRepo }
