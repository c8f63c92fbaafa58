/*
Package notification is the outbound side of the order flow: confirmation and
status-update messages plus receipt rendering.

Messages are handed to a Dispatcher after the order transaction has
committed. Dispatch never reports an error; delivery problems are logged by
the dispatcher and never affect the order that triggered them.
*/
package notification

import (
	"context"
	"fmt"
	"time"

	"storefront/domain/order"
	"storefront/domain/shared"
)

// Message kinds
const (
	KindOrderConfirmation = "order.confirmation"
	KindOrderStatusUpdate = "order.status_update"
)

// PlaceholderProductName used when a line has no name and the product is gone
const PlaceholderProductName = "Product"

// OrderView serializable snapshot of an order handed to notifiers and renderers
type OrderView struct {
	ID            string       `json:"id"`
	OrderNumber   string       `json:"order_number"`
	UserID        string       `json:"user_id"`
	Customer      CustomerView `json:"customer"`
	Lines         []LineView   `json:"lines"`
	Subtotal      shared.Money `json:"subtotal"`
	Tax           shared.Money `json:"tax"`
	Total         shared.Money `json:"total_amount"`
	PaymentMethod string       `json:"payment_method"`
	Status        string       `json:"status"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type CustomerView struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
}

type LineView struct {
	ProductID   string       `json:"product_id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Brand       string       `json:"brand,omitempty"`
	Category    string       `json:"category,omitempty"`
	Image       string       `json:"image,omitempty"`
	Quantity    int          `json:"quantity"`
	Price       shared.Money `json:"price"`
	Total       shared.Money `json:"total"`
}

// NewOrderView snapshots o using the names stored on its lines
func NewOrderView(o *order.Order) OrderView {
	customer := o.Customer()
	totals := o.Totals()
	lines := o.Lines()

	view := OrderView{
		ID:          o.ID(),
		OrderNumber: o.OrderNumber(),
		UserID:      o.UserID(),
		Customer: CustomerView{
			Name:    customer.Name,
			Email:   customer.Email,
			Phone:   customer.Phone,
			Address: customer.Address,
			ZipCode: customer.ZipCode,
		},
		Lines:         make([]LineView, 0, len(lines)),
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: o.PaymentMethod(),
		Status:        string(o.Status()),
		Notes:         o.Notes(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
	for _, l := range lines {
		name := l.Name()
		if name == "" {
			name = PlaceholderProductName
		}
		view.Lines = append(view.Lines, LineView{
			ProductID: l.ProductID(),
			Name:      name,
			Brand:     l.Brand(),
			Category:  l.Category(),
			Image:     l.Image(),
			Quantity:  l.Quantity(),
			Price:     l.Price(),
			Total:     l.Total(),
		})
	}
	return view
}

// Message one notification to deliver
type Message struct {
	Kind   string    `json:"kind"`
	Order  OrderView `json:"order"`
	Email  string    `json:"email"`
	Status string    `json:"status,omitempty"`
}

// Notifier delivers order messages to a customer
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, view OrderView, email string) error
	SendOrderStatusUpdate(ctx context.Context, view OrderView, status, email string) error
}

// ReceiptRenderer produces the printable receipt of an order
type ReceiptRenderer interface {
	RenderReceipt(view OrderView) ([]byte, error)
}

// Dispatcher hands messages off for delivery outside the caller's critical path
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message)
}

// Deliver routes msg to the matching Notifier method
func Deliver(ctx context.Context, notifier Notifier, msg Message) error {
	switch msg.Kind {
	case KindOrderConfirmation:
		return notifier.SendOrderConfirmation(ctx, msg.Order, msg.Email)
	case KindOrderStatusUpdate:
		return notifier.SendOrderStatusUpdate(ctx, msg.Order, msg.Status, msg.Email)
	default:
		return fmt.Errorf("unknown notification kind %q", msg.Kind)
	}
}
