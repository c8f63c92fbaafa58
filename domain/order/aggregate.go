/*
Package order is the order ledger: the permanent record of a checkout.

An order is a header (customer snapshot, payment method, status, totals) plus
its lines (product snapshot, quantity, unit price, line total). Both are
written once at checkout; afterwards only status and notes change. Customer
and product details are copied at write time so the order stays historically
accurate when profiles or products are edited or deleted later.
*/
package order

import (
	"fmt"
	"time"

	"storefront/domain/shared"

	"github.com/google/uuid"
)

// Order aggregate root
type Order struct {
	id            string
	orderNumber   string
	userID        string
	customer      Customer
	lines         []Line
	totals        Totals
	paymentMethod string
	status        Status
	notes         string
	version       int
	createdAt     time.Time
	updatedAt     time.Time
	isNew         bool

	shared.EventRecorder
}

// Customer denormalized copy of the buyer's profile at checkout
type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address string
	ZipCode string
}

// PlaceOptions input for NewOrder
type PlaceOptions struct {
	UserID        string
	OrderNumber   string
	Customer      Customer
	Lines         []LineRequest
	PaymentMethod string
	Notes         string
}

// NewOrder builds a pending order from line snapshots and records order.placed.
// Totals are derived from the lines; they are never taken from the caller.
func NewOrder(opts PlaceOptions) (*Order, error) {
	if opts.UserID == "" {
		return nil, shared.NewValidationError("order", "user_id", "user id is required")
	}
	if opts.OrderNumber == "" {
		return nil, shared.NewValidationError("order", "order_number", "order number is required")
	}
	if len(opts.Lines) == 0 {
		return nil, NewEmptyCartError()
	}
	if opts.PaymentMethod == "" {
		return nil, shared.NewValidationError("order", "payment_method", "payment method is required")
	}

	lines := make([]Line, 0, len(opts.Lines))
	subtotal := shared.Zero
	for _, req := range opts.Lines {
		line, err := NewLine(req)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		subtotal = subtotal.Add(line.total)
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:            orderID.String(),
		orderNumber:   opts.OrderNumber,
		userID:        opts.UserID,
		customer:      opts.Customer,
		lines:         lines,
		totals:        ComputeTotals(subtotal),
		paymentMethod: opts.PaymentMethod,
		status:        StatusPending,
		notes:         opts.Notes,
		createdAt:     now,
		updatedAt:     now,
		isNew:         true,
	}
	o.Record(NewOrderPlacedEvent(o))
	return o, nil
}

// ChangeStatus sets a new status and, when notes is non-empty, replaces the notes.
// order.status_changed is recorded only when the status value differs from the
// current one. Returns whether the status changed.
func (o *Order) ChangeStatus(status Status, notes string) (bool, error) {
	if !status.IsValid() {
		return false, NewInvalidStatusError(string(status))
	}

	if notes != "" {
		o.notes = notes
	}

	previous := o.status
	if previous == status {
		if notes != "" {
			o.updatedAt = time.Now()
		}
		return false, nil
	}

	o.status = status
	o.updatedAt = time.Now()
	o.Record(NewOrderStatusChangedEvent(o, previous))
	return true, nil
}

// IncrementVersionForSave bumps the optimistic lock version after a successful update
func (o *Order) IncrementVersionForSave() {
	o.version++
}

// IsNew reports whether the order has not been inserted yet
func (o *Order) IsNew() bool { return o.isNew }

// MarkPersisted is called by repositories after the insert
func (o *Order) MarkPersisted() { o.isNew = false }

func (o *Order) ID() string            { return o.id }
func (o *Order) OrderNumber() string   { return o.orderNumber }
func (o *Order) UserID() string        { return o.userID }
func (o *Order) Customer() Customer    { return o.customer }
func (o *Order) Totals() Totals        { return o.totals }
func (o *Order) PaymentMethod() string { return o.paymentMethod }
func (o *Order) Status() Status        { return o.status }
func (o *Order) Notes() string         { return o.notes }
func (o *Order) Version() int          { return o.version }
func (o *Order) CreatedAt() time.Time  { return o.createdAt }
func (o *Order) UpdatedAt() time.Time  { return o.updatedAt }

// Lines returns a copy of the order lines
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// ReconstructionDTO stored order state. Repositories only.
type ReconstructionDTO struct {
	ID            string
	OrderNumber   string
	UserID        string
	Customer      Customer
	Lines         []LineDTO
	Subtotal      shared.Money
	Tax           shared.Money
	Total         shared.Money
	PaymentMethod string
	Status        Status
	Notes         string
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromDTO restores a stored order; no events are recorded
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	lines := make([]Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lines = append(lines, RebuildLineFromDTO(l))
	}
	return &Order{
		id:            dto.ID,
		orderNumber:   dto.OrderNumber,
		userID:        dto.UserID,
		customer:      dto.Customer,
		lines:         lines,
		totals:        Totals{Subtotal: dto.Subtotal, Tax: dto.Tax, Total: dto.Total},
		paymentMethod: dto.PaymentMethod,
		status:        dto.Status,
		notes:         dto.Notes,
		version:       dto.Version,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
	}
}

// ToDTO flattens the order for storage
func (o *Order) ToDTO() ReconstructionDTO {
	lines := make([]LineDTO, 0, len(o.lines))
	for _, l := range o.lines {
		lines = append(lines, l.ToDTO())
	}
	return ReconstructionDTO{
		ID:            o.id,
		OrderNumber:   o.orderNumber,
		UserID:        o.userID,
		Customer:      o.customer,
		Lines:         lines,
		Subtotal:      o.totals.Subtotal,
		Tax:           o.totals.Tax,
		Total:         o.totals.Total,
		PaymentMethod: o.paymentMethod,
		Status:        o.status,
		Notes:         o.notes,
		Version:       o.version,
		CreatedAt:     o.createdAt,
		UpdatedAt:     o.updatedAt,
	}
}

var _ shared.AggregateRoot = (*Order)(nil)
