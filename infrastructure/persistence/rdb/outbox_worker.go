package rdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/application/notification"
	"storefront/infrastructure/persistence/po"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

type outboxStore interface {
	GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error)
	MarkEventProcessing(ctx context.Context, eventID string) error
	MarkEventPublished(ctx context.Context, eventID string) error
	MarkEventFailed(ctx context.Context, eventID string, maxRetries int, cause error) error
}

// OutboxWorker polls pending notification messages and hands them to a notifier
type OutboxWorker struct {
	repository   outboxStore
	notifier     notification.Notifier
	pollInterval time.Duration
	batchSize    int
	maxRetries   int
}

func NewOutboxWorker(
	repository *OutboxRepository,
	notifier notification.Notifier,
	pollInterval time.Duration,
	batchSize int,
	maxRetries int,
) (*OutboxWorker, error) {
	if repository == nil {
		return nil, fmt.Errorf("outbox repository is required")
	}
	return newOutboxWorker(repository, notifier, pollInterval, batchSize, maxRetries)
}

func newOutboxWorker(repository outboxStore, notifier notification.Notifier, pollInterval time.Duration, batchSize, maxRetries int) (*OutboxWorker, error) {
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if pollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive")
	}
	if maxRetries <= 0 {
		return nil, fmt.Errorf("max retries must be positive")
	}
	return &OutboxWorker{
		repository:   repository,
		notifier:     notifier,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		maxRetries:   maxRetries,
	}, nil
}

// Run polls until ctx is cancelled
func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	logger.Info("Outbox worker started",
		zap.Duration("poll_interval", w.pollInterval),
		zap.Int("batch_size", w.batchSize))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Outbox worker stopped")
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.ProcessBatch(ctx); err != nil {
				logger.Error("Outbox batch processing failed", zap.Error(err))
			}
		}
	}
}

// ProcessBatch delivers one batch and returns how many messages were sent
func (w *OutboxWorker) ProcessBatch(ctx context.Context) (int, error) {
	events, err := w.repository.GetPendingEvents(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, event := range events {
		if err := w.repository.MarkEventProcessing(ctx, event.ID); err != nil {
			logger.Warn("Skip outbox event due to lock contention",
				zap.String("event_id", event.ID),
				zap.Error(err))
			continue
		}

		if err := w.deliver(ctx, event); err != nil {
			logger.Warn("Notification delivery failed",
				zap.String("event_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Int("retry_count", event.RetryCount+1),
				zap.Error(err))
			if failErr := w.repository.MarkEventFailed(ctx, event.ID, w.maxRetries, err); failErr != nil {
				logger.Error("Failed to mark outbox event as failed",
					zap.String("event_id", event.ID),
					zap.Error(failErr))
			}
			continue
		}

		if err := w.repository.MarkEventPublished(ctx, event.ID); err != nil {
			logger.Error("Failed to mark outbox event as published",
				zap.String("event_id", event.ID),
				zap.Error(err))
			continue
		}
		delivered++
	}
	return delivered, nil
}

func (w *OutboxWorker) deliver(ctx context.Context, event *po.OutboxEventPO) error {
	var msg notification.Message
	if err := json.Unmarshal([]byte(event.Payload), &msg); err != nil {
		return fmt.Errorf("decode outbox payload: %w", err)
	}
	return notification.Deliver(ctx, w.notifier, msg)
}
