package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/campusbites/canteen/internal/config"
)

// Module provides the event publisher. Without brokers configured the
// publisher degrades to a no-op so local runs do not need Kafka.
var Module = fx.Options(
	fx.Provide(newPublisher),
)

func newPublisher(cfg *config.Config, logger *slog.Logger, lc fx.Lifecycle) Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka brokers not configured, events disabled")
		return NopPublisher{}
	}
	p := NewKafkaPublisher(cfg.KafkaBrokers, cfg.KitchenTopic, cfg.MenuTopic)
	lc.Append(fx.StopHook(p.Close))
	return p
}
