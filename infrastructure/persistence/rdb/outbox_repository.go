package rdb

import (
	"context"
	"fmt"
	"time"

	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/po"

	"gorm.io/gorm"
)

// OutboxRepository outbox_events table, written after checkout or a status
// change commits and drained by the notification worker
type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Save(ctx context.Context, event *po.OutboxEventPO) error {
	if event.EventType == "" {
		return fmt.Errorf("outbox event type is required")
	}
	if err := persistence.DB(ctx, r.db).Create(event).Error; err != nil {
		return fmt.Errorf("failed to save event to outbox: %w", err)
	}
	return nil
}

// GetPendingEvents oldest first
func (r *OutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error) {
	var events []*po.OutboxEventPO
	err := persistence.DB(ctx, r.db).
		Where("status = ?", string(po.EventStatusPending)).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}
	return events, nil
}

// MarkEventProcessing claims a pending event; losing the race to another
// worker is reported as an error
func (r *OutboxRepository) MarkEventProcessing(ctx context.Context, eventID string) error {
	result := persistence.DB(ctx, r.db).Model(&po.OutboxEventPO{}).
		Where("id = ? AND status = ?", eventID, string(po.EventStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(po.EventStatusProcessing),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found or already being processed: %s", eventID)
	}
	return nil
}

func (r *OutboxRepository) MarkEventPublished(ctx context.Context, eventID string) error {
	result := persistence.DB(ctx, r.db).Model(&po.OutboxEventPO{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{
			"status":     string(po.EventStatusPublished),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found: %s", eventID)
	}
	return nil
}

// MarkEventFailed returns the event to pending until maxRetries deliveries failed
func (r *OutboxRepository) MarkEventFailed(ctx context.Context, eventID string, maxRetries int, cause error) error {
	db := persistence.DB(ctx, r.db)

	var event po.OutboxEventPO
	if err := db.Select("id", "retry_count").First(&event, "id = ?", eventID).Error; err != nil {
		return fmt.Errorf("failed to find event: %w", err)
	}

	retries := event.RetryCount + 1
	status := po.EventStatusFailed
	if retries < maxRetries {
		status = po.EventStatusPending
	}
	lastError := ""
	if cause != nil {
		lastError = cause.Error()
	}

	return db.Model(&po.OutboxEventPO{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{
			"status":      string(status),
			"retry_count": retries,
			"last_error":  lastError,
			"updated_at":  time.Now(),
		}).Error
}
