package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu            sync.Mutex
	confirmations []string
	updates       []string
	err           error
	delay         time.Duration
}

func (n *recordingNotifier) SendOrderConfirmation(ctx context.Context, view OrderView, email string) error {
	if n.delay > 0 {
		select {
		case <-time.After(n.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmations = append(n.confirmations, view.OrderNumber+"|"+email)
	return n.err
}

func (n *recordingNotifier) SendOrderStatusUpdate(ctx context.Context, view OrderView, status, email string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, view.OrderNumber+"|"+status+"|"+email)
	return n.err
}

func TestAsyncDispatcherDeliversDetachedFromCaller(t *testing.T) {
	notifier := &recordingNotifier{delay: 20 * time.Millisecond}
	dispatcher := NewAsyncDispatcher(notifier, time.Second)

	ctx, cancel := context.WithCancel(logger.ContextWithRequestID(context.Background(), "req-1"))
	dispatcher.Dispatch(ctx, Message{Kind: KindOrderConfirmation, Order: OrderView{OrderNumber: "ORD-1"}, Email: "a@example.com"})
	cancel()

	require.NoError(t, dispatcher.Close(context.Background()))
	assert.Equal(t, []string{"ORD-1|a@example.com"}, notifier.confirmations)
}

func TestAsyncDispatcherSwallowsFailures(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	dispatcher := NewAsyncDispatcher(notifier, time.Second)

	dispatcher.Dispatch(context.Background(), Message{Kind: KindOrderStatusUpdate, Order: OrderView{OrderNumber: "ORD-2"}, Status: "shipped", Email: "b@example.com"})
	dispatcher.Dispatch(context.Background(), Message{Kind: "unknown"})

	require.NoError(t, dispatcher.Close(context.Background()))
	assert.Equal(t, []string{"ORD-2|shipped|b@example.com"}, notifier.updates)
}

func TestAsyncDispatcherTimeout(t *testing.T) {
	notifier := &recordingNotifier{delay: time.Second}
	dispatcher := NewAsyncDispatcher(notifier, 10*time.Millisecond)

	dispatcher.Dispatch(context.Background(), Message{Kind: KindOrderConfirmation, Order: OrderView{OrderNumber: "ORD-3"}})

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	require.NoError(t, dispatcher.Close(ctx))
	assert.Empty(t, notifier.confirmations)
}

func TestDeliverRejectsUnknownKind(t *testing.T) {
	err := Deliver(context.Background(), &recordingNotifier{}, Message{Kind: "order.refund"})
	assert.Error(t, err)
}
