package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/application/notification"
	"storefront/domain/shared"
	"storefront/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/gomail.v2"
)

func view() notification.OrderView {
	return notification.OrderView{
		ID:          "order-1",
		OrderNumber: "ORD-1-042",
		Customer:    notification.CustomerView{Name: "Juan", Email: "juan@example.com", Phone: "0917"},
		Lines: []notification.LineView{
			{ProductID: "A", Name: "Dutch Oven <Large>", Quantity: 2, Price: shared.MoneyFromFloat(100), Total: shared.MoneyFromFloat(200)},
		},
		Subtotal:  shared.MoneyFromFloat(200),
		Tax:       shared.MoneyFromFloat(16),
		Total:     shared.MoneyFromFloat(216),
		Status:    "pending",
		CreatedAt: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	}
}

type capturedMail struct {
	messages []*gomail.Message
	err      error
}

func (c *capturedMail) DialAndSend(m ...*gomail.Message) error {
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, m...)
	return nil
}

func (c *capturedMail) raw(t *testing.T, i int) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := c.messages[i].WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

type stubRenderer struct{ err error }

func (r stubRenderer) RenderReceipt(v notification.OrderView) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.3 receipt"), nil
}

func newMailNotifier(sender mailSender, renderer notification.ReceiptRenderer) *MailNotifier {
	return &MailNotifier{
		sender:    sender,
		from:      "noreply@kitchenatics.com",
		storeName: "Kitchenatics",
		renderer:  renderer,
		now:       func() time.Time { return time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC) },
	}
}

func TestMailConfirmation(t *testing.T) {
	sender := &capturedMail{}
	n := newMailNotifier(sender, stubRenderer{})

	require.NoError(t, n.SendOrderConfirmation(context.Background(), view(), "juan@example.com"))
	require.Len(t, sender.messages, 1)

	m := sender.messages[0]
	assert.Equal(t, []string{"Order Confirmation - ORD-1-042"}, m.GetHeader("Subject"))
	assert.Equal(t, []string{"juan@example.com"}, m.GetHeader("To"))

	raw := sender.raw(t, 0)
	assert.Contains(t, raw, "ORD-1-042")
	assert.Contains(t, raw, "Dutch Oven &lt;Large&gt;")
	assert.NotContains(t, raw, "Receipt-ORD-1-042.pdf")
}

func TestMailStatusUpdateAttachesReceipt(t *testing.T) {
	sender := &capturedMail{}
	n := newMailNotifier(sender, stubRenderer{})

	require.NoError(t, n.SendOrderStatusUpdate(context.Background(), view(), "shipped", "juan@example.com"))
	m := sender.messages[0]
	assert.Equal(t, []string{"Order Status Update - ORD-1-042"}, m.GetHeader("Subject"))

	raw := sender.raw(t, 0)
	assert.Contains(t, raw, "Receipt-ORD-1-042.pdf")
	assert.Contains(t, raw, "on its way")
}

func TestMailStatusUpdateWithoutReceipt(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	sender := &capturedMail{}
	n := newMailNotifier(sender, stubRenderer{err: errors.New("font missing")})

	require.NoError(t, n.SendOrderStatusUpdate(context.Background(), view(), "delivered", "juan@example.com"))
	assert.NotContains(t, sender.raw(t, 0), "Receipt-ORD-1-042.pdf")
	assert.Equal(t, 1, logs.FilterMessage("Receipt attachment skipped").Len())
}

func TestMailFailures(t *testing.T) {
	n := newMailNotifier(&capturedMail{err: errors.New("535 auth failed")}, nil)
	err := n.SendOrderConfirmation(context.Background(), view(), "juan@example.com")
	assert.ErrorContains(t, err, "535")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sender := &capturedMail{}
	err = newMailNotifier(sender, nil).SendOrderStatusUpdate(ctx, view(), "shipped", "juan@example.com")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sender.messages)
}

type capturedKafka struct {
	messages []kafka.Message
	closed   bool
}

func (c *capturedKafka) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	c.messages = append(c.messages, msgs...)
	return nil
}

func (c *capturedKafka) Close() error {
	c.closed = true
	return nil
}

func TestKafkaNotifier(t *testing.T) {
	w := &capturedKafka{}
	n := &KafkaNotifier{writer: w, now: time.Now}
	ctx := context.Background()

	require.NoError(t, n.SendOrderConfirmation(ctx, view(), "juan@example.com"))
	require.NoError(t, n.SendOrderStatusUpdate(ctx, view(), "shipped", "juan@example.com"))
	require.Len(t, w.messages, 2)

	assert.Equal(t, "ORD-1-042", string(w.messages[1].Key))
	var event NotificationEvent
	require.NoError(t, json.Unmarshal(w.messages[1].Value, &event))
	assert.Equal(t, notification.KindOrderStatusUpdate, event.Kind)
	assert.Equal(t, "shipped", event.Status)
	assert.Equal(t, "216.00", event.Order.Total.String())

	require.NoError(t, n.Close())
	assert.True(t, w.closed)
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	n := NewLogNotifier()
	require.NoError(t, n.SendOrderStatusUpdate(context.Background(), view(), "shipped", "juan@example.com"))

	entries := logs.FilterMessage("Order status update").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "shipped", entries[0].ContextMap()["status"])
}
