package receipt

import (
	"bytes"
	"testing"
	"time"

	"storefront/application/notification"
	"storefront/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView() notification.OrderView {
	return notification.OrderView{
		ID:          "order-1",
		OrderNumber: "ORD-1718000000000-042",
		Customer: notification.CustomerView{
			Name: "Juan Dela Cruz", Email: "juan@example.com", ZipCode: "1100",
		},
		Lines: []notification.LineView{
			{ProductID: "A", Name: "Dutch Oven", Quantity: 2, Price: shared.MoneyFromFloat(100), Total: shared.MoneyFromFloat(200)},
			{ProductID: "B", Quantity: 1, Price: shared.MoneyFromFloat(50), Total: shared.MoneyFromFloat(50)},
		},
		Subtotal:      shared.MoneyFromFloat(250),
		Tax:           shared.MoneyFromFloat(20),
		Total:         shared.MoneyFromFloat(270),
		PaymentMethod: "cash_on_delivery",
		Status:        "shipped",
		CreatedAt:     time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestRenderReceipt(t *testing.T) {
	r := NewPDFRenderer("Kitchenatics")
	r.compress = false
	r.now = func() time.Time { return time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC) }

	data, err := r.RenderReceipt(sampleView())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	for _, text := range []string{
		"ORDER RECEIPT",
		"ORD-1718000000000-042",
		"CASH ON DELIVERY",
		"Status: Shipped",
		"Dutch Oven",
		"Grand Total:",
		"PHP 270.00",
		"Tax \\(8%\\):",
		"Product",
	} {
		assert.Contains(t, string(data), text)
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "N/A", paymentLabel(""))
	assert.Equal(t, "GCASH", paymentLabel("gcash"))
	assert.Equal(t, "Pending", capitalize("pending"))
	assert.Equal(t, "abc...", truncate("abcdefgh", 6))
	assert.Equal(t, "short", truncate("short", 10))
}
