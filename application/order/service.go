/*
Package order orchestrates checkout, the order status lifecycle, order
queries and receipts.

Checkout converts the caller's cart into an order inside one unit of work:
header and lines are written and the cart is deleted, or nothing is. Domain
events recorded by the aggregate are pulled after commit and turned into
notification messages; delivery happens outside the transaction and its
failures never reach the caller.
*/
package order

import (
	"context"

	"storefront/application/notification"
	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/domain/user"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// Options checkout behaviour
type Options struct {
	// OrderNumberAttempts fresh transactions tried when an order number collides
	OrderNumberAttempts int

	// EnforceStock decrements product stock inside the checkout transaction
	EnforceStock bool

	DefaultPaymentMethod string
}

var DefaultOptions = Options{
	OrderNumberAttempts:  3,
	DefaultPaymentMethod: "cash_on_delivery",
}

// Dependencies collaborators of the order service
type Dependencies struct {
	Orders     order.Repository
	Carts      cart.Repository
	Users      user.Repository
	Products   catalog.Repository
	UnitOfWork shared.UnitOfWork
	Dispatcher notification.Dispatcher
	Renderer   notification.ReceiptRenderer
	Numbers    order.NumberGenerator
}

type Service struct {
	orders     order.Repository
	carts      cart.Repository
	users      user.Repository
	products   catalog.Repository
	uow        shared.UnitOfWork
	dispatcher notification.Dispatcher
	renderer   notification.ReceiptRenderer
	numbers    order.NumberGenerator
	opts       Options
}

func NewService(deps Dependencies, opts Options) *Service {
	if opts.OrderNumberAttempts < 1 {
		opts.OrderNumberAttempts = DefaultOptions.OrderNumberAttempts
	}
	if opts.DefaultPaymentMethod == "" {
		opts.DefaultPaymentMethod = DefaultOptions.DefaultPaymentMethod
	}
	numbers := deps.Numbers
	if numbers == nil {
		numbers = order.TimeNumberGenerator{}
	}
	return &Service{
		orders:     deps.Orders,
		carts:      deps.Carts,
		users:      deps.Users,
		products:   deps.Products,
		uow:        deps.UnitOfWork,
		dispatcher: deps.Dispatcher,
		renderer:   deps.Renderer,
		numbers:    numbers,
		opts:       opts,
	}
}

// publish turns the events recorded by o into notification messages
func (s *Service) publish(ctx context.Context, o *order.Order) {
	events := o.PullEvents()
	if s.dispatcher == nil || len(events) == 0 {
		return
	}

	for _, event := range events {
		switch e := event.(type) {
		case *order.OrderPlacedEvent:
			s.dispatcher.Dispatch(ctx, notification.Message{
				Kind:  notification.KindOrderConfirmation,
				Order: notification.NewOrderView(o),
				Email: e.Email(),
			})
		case *order.OrderStatusChangedEvent:
			s.dispatcher.Dispatch(ctx, notification.Message{
				Kind:   notification.KindOrderStatusUpdate,
				Order:  s.describeLines(ctx, o),
				Email:  e.Email(),
				Status: string(e.To()),
			})
		default:
			logger.FromContext(ctx).Debug("Ignoring order event", zap.String("event", event.EventName()))
		}
	}
}

// describeLines snapshots o and resolves product name and description from the
// live catalog. Lookup failures keep the stored snapshot.
func (s *Service) describeLines(ctx context.Context, o *order.Order) notification.OrderView {
	view := notification.NewOrderView(o)

	ids := make([]string, 0, len(view.Lines))
	for _, l := range view.Lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		logger.FromContext(ctx).Warn("Product lookup for notification failed",
			zap.String("order_number", o.OrderNumber()),
			zap.Error(err))
		return view
	}

	byID := make(map[string]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID()] = p
	}
	for i := range view.Lines {
		if p, ok := byID[view.Lines[i].ProductID]; ok {
			view.Lines[i].Name = p.Name()
			view.Lines[i].Description = p.Description()
		}
	}
	return view
}
