package order

import (
	"time"

	"storefront/domain/shared"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderPlacedEvent struct {
	orderID     string
	orderNumber string
	userID      string
	email       string
	total       shared.Money
	occurredOn  time.Time
}

func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		orderID:     o.id,
		orderNumber: o.orderNumber,
		userID:      o.userID,
		email:       o.customer.Email,
		total:       o.totals.Total,
		occurredOn:  time.Now(),
	}
}

func (e *OrderPlacedEvent) EventName() string      { return EventOrderPlaced }
func (e *OrderPlacedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderPlacedEvent) GetAggregateID() string { return e.orderID }
func (e *OrderPlacedEvent) OrderNumber() string    { return e.orderNumber }
func (e *OrderPlacedEvent) UserID() string         { return e.userID }
func (e *OrderPlacedEvent) Email() string          { return e.email }
func (e *OrderPlacedEvent) Total() shared.Money    { return e.total }

type OrderStatusChangedEvent struct {
	orderID     string
	orderNumber string
	email       string
	from        Status
	to          Status
	occurredOn  time.Time
}

func NewOrderStatusChangedEvent(o *Order, from Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		orderID:     o.id,
		orderNumber: o.orderNumber,
		email:       o.customer.Email,
		from:        from,
		to:          o.status,
		occurredOn:  time.Now(),
	}
}

func (e *OrderStatusChangedEvent) EventName() string      { return EventOrderStatusChanged }
func (e *OrderStatusChangedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderStatusChangedEvent) GetAggregateID() string { return e.orderID }
func (e *OrderStatusChangedEvent) OrderNumber() string    { return e.orderNumber }
func (e *OrderStatusChangedEvent) Email() string          { return e.email }
func (e *OrderStatusChangedEvent) From() Status           { return e.from }
func (e *OrderStatusChangedEvent) To() Status             { return e.to }
