package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/application/notification"
	"storefront/config"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes notifications for a downstream mailer. Messages are
// keyed by order number so updates of one order stay in partition order.
type KafkaNotifier struct {
	writer messageWriter
	now    func() time.Time
}

func NewKafkaNotifier(cfg config.KafkaConfig) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
		now: time.Now,
	}
}

// NotificationEvent wire format on the notifications topic
type NotificationEvent struct {
	Kind       string                 `json:"kind"`
	Email      string                 `json:"email"`
	Status     string                 `json:"status,omitempty"`
	Order      notification.OrderView `json:"order"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (n *KafkaNotifier) SendOrderConfirmation(ctx context.Context, view notification.OrderView, email string) error {
	return n.publish(ctx, NotificationEvent{Kind: notification.KindOrderConfirmation, Email: email, Order: view})
}

func (n *KafkaNotifier) SendOrderStatusUpdate(ctx context.Context, view notification.OrderView, status, email string) error {
	return n.publish(ctx, NotificationEvent{Kind: notification.KindOrderStatusUpdate, Email: email, Status: status, Order: view})
}

func (n *KafkaNotifier) publish(ctx context.Context, event NotificationEvent) error {
	event.OccurredAt = n.now().UTC()
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Order.OrderNumber),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind)},
		},
	})
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

var _ notification.Notifier = (*KafkaNotifier)(nil)
