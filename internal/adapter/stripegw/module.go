package stripegw

import (
	"go.uber.org/fx"

	"github.com/campusbites/canteen/internal/config"
)

// Module provides the payment gateway.
var Module = fx.Provide(newGateway)

func newGateway(cfg *config.Config) Gateway {
	return New(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.PublicBaseURL)
}
