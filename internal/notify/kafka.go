package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

const publishTimeout = 5 * time.Second

// Publisher fans order and menu events out to the kitchen displays.
// Publishing is best effort: callers log failures and keep serving.
type Publisher interface {
	PublishOrder(ctx context.Context, event OrderEvent) error
	PublishMenu(ctx context.Context, event MenuEvent) error
	Close() error
}

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to the kitchen and menu topics.
type KafkaPublisher struct {
	orders kafkaWriter
	menu   kafkaWriter
}

func NewKafkaPublisher(brokers []string, kitchenTopic, menuTopic string) *KafkaPublisher {
	return &KafkaPublisher{
		orders: newWriter(brokers, kitchenTopic),
		menu:   newWriter(brokers, menuTopic),
	}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
	}
}

func (p *KafkaPublisher) PublishOrder(ctx context.Context, event OrderEvent) error {
	return publish(ctx, p.orders, event.Token, event)
}

func (p *KafkaPublisher) PublishMenu(ctx context.Context, event MenuEvent) error {
	return publish(ctx, p.menu, strconv.FormatInt(event.ItemID, 10), event)
}

func (p *KafkaPublisher) Close() error {
	if err := p.orders.Close(); err != nil {
		return err
	}
	return p.menu.Close()
}

func publish(ctx context.Context, w kafkaWriter, key string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrder(context.Context, OrderEvent) error { return nil }
func (NopPublisher) PublishMenu(context.Context, MenuEvent) error   { return nil }
func (NopPublisher) Close() error                                   { return nil }
