package otp

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module provides the in-memory OTP store and the default sender.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Provide(newSender),
)

func newStore() *Store {
	return NewStore(StoreOptions{})
}

func newSender(logger *slog.Logger) Sender {
	return NewLogSender(logger)
}
