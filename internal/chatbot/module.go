package chatbot

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/campusbites/canteen/internal/domain/repository"
)

// Module provides the rule-based assistant.
var Module = fx.Provide(newBot)

func newBot(menu repository.MenuRepository, orders repository.OrderRepository, wallets repository.WalletRepository, logger *slog.Logger) *Bot {
	return New(menu, orders, wallets, logger)
}
