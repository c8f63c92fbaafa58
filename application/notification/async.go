package notification

import (
	"context"
	"sync"
	"time"

	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// AsyncDispatcher delivers each message on its own goroutine, detached from
// the request that produced it and bounded by timeout.
type AsyncDispatcher struct {
	notifier Notifier
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewAsyncDispatcher(notifier Notifier, timeout time.Duration) *AsyncDispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AsyncDispatcher{notifier: notifier, timeout: timeout}
}

func (d *AsyncDispatcher) Dispatch(ctx context.Context, msg Message) {
	log := logger.FromContext(ctx)
	ctx = context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error("Notifier panicked",
					zap.String("kind", msg.Kind),
					zap.String("order_number", msg.Order.OrderNumber),
					zap.Any("panic", r))
			}
		}()

		sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		if err := Deliver(sendCtx, d.notifier, msg); err != nil {
			log.Warn("Notification delivery failed",
				zap.String("kind", msg.Kind),
				zap.String("order_number", msg.Order.OrderNumber),
				zap.Error(err))
			return
		}
		log.Info("Notification delivered",
			zap.String("kind", msg.Kind),
			zap.String("order_number", msg.Order.OrderNumber))
	}()
}

// Close waits for in-flight deliveries or until ctx is done
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
