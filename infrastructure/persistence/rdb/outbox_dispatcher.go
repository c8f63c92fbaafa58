package rdb

import (
	"context"
	"encoding/json"

	"storefront/application/notification"
	"storefront/infrastructure/persistence/po"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

type outboxWriter interface {
	Save(ctx context.Context, event *po.OutboxEventPO) error
}

// OutboxDispatcher persists notification messages for the worker instead of
// sending them in process. It is called after the business transaction
// committed; a failed write is logged and dropped like any other delivery
// failure.
type OutboxDispatcher struct {
	outbox outboxWriter
}

func NewOutboxDispatcher(outbox *OutboxRepository) *OutboxDispatcher {
	return &OutboxDispatcher{outbox: outbox}
}

func (d *OutboxDispatcher) Dispatch(ctx context.Context, msg notification.Message) {
	log := logger.FromContext(ctx).With(
		zap.String("kind", msg.Kind),
		zap.String("order_number", msg.Order.OrderNumber))

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Warn("Failed to encode notification for outbox", zap.Error(err))
		return
	}
	if err := d.outbox.Save(context.WithoutCancel(ctx), po.NewOutboxEvent(msg.Order.ID, msg.Kind, payload)); err != nil {
		log.Warn("Failed to write notification to outbox", zap.Error(err))
		return
	}
	log.Debug("Notification queued in outbox")
}

var _ notification.Dispatcher = (*OutboxDispatcher)(nil)
