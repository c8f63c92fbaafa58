// Package notify holds the notification transports: structured log lines,
// SMTP mail and Kafka events.
package notify

import (
	"context"

	"storefront/application/notification"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// LogNotifier writes each notification as a log entry; the development transport
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (LogNotifier) SendOrderConfirmation(ctx context.Context, view notification.OrderView, email string) error {
	logger.FromContext(ctx).Info("Order confirmation",
		zap.String("order_number", view.OrderNumber),
		zap.String("email", email),
		zap.Int("lines", len(view.Lines)),
		zap.String("total", view.Total.String()))
	return nil
}

func (LogNotifier) SendOrderStatusUpdate(ctx context.Context, view notification.OrderView, status, email string) error {
	logger.FromContext(ctx).Info("Order status update",
		zap.String("order_number", view.OrderNumber),
		zap.String("email", email),
		zap.String("status", status))
	return nil
}

var _ notification.Notifier = LogNotifier{}
