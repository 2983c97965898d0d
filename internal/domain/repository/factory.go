package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Menu() MenuRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	Wallets() WalletRepository
	Feedback() FeedbackRepository
}
