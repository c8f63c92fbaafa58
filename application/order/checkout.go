package order

import (
	"context"
	"errors"
	"fmt"

	"storefront/domain/cart"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// Checkout converts the caller's cart into a pending order.
//
// Header insert, line insert, optional stock decrement and cart deletion share
// one transaction. A colliding order number restarts the whole transaction with
// a new number, up to Options.OrderNumberAttempts times. The confirmation is
// dispatched only after commit.
func (s *Service) Checkout(ctx context.Context, principal shared.Principal, req CheckoutRequest) (*OrderResponse, error) {
	if err := principal.RequireUser(); err != nil {
		return nil, err
	}
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = s.opts.DefaultPaymentMethod
	}

	log := logger.FromContext(ctx)

	var placed *order.Order
	for attempt := 1; ; attempt++ {
		orderNumber := s.numbers.Next()
		err := s.uow.Execute(ctx, func(ctx context.Context) error {
			o, err := s.placeOrder(ctx, principal.UserID, orderNumber, paymentMethod, req.Notes)
			if err != nil {
				return err
			}
			placed = o
			return nil
		})
		if err == nil {
			break
		}

		placed = nil
		if !errors.Is(err, order.ErrDuplicateOrderNumber) {
			return nil, err
		}
		if attempt >= s.opts.OrderNumberAttempts {
			log.Error("Checkout exhausted order number attempts",
				zap.String("user_id", principal.UserID),
				zap.Int("attempts", attempt))
			return nil, fmt.Errorf("checkout failed after %d order number attempts: %v", attempt, err)
		}
		log.Warn("Order number collision, retrying checkout",
			zap.String("order_number", orderNumber),
			zap.Int("attempt", attempt))
	}

	log.Info("Order placed",
		zap.String("order_number", placed.OrderNumber()),
		zap.String("user_id", principal.UserID),
		zap.String("total", placed.Totals().Total.String()))

	s.publish(ctx, placed)
	resp := toOrderResponse(placed)
	return &resp, nil
}

// placeOrder runs inside the checkout transaction
func (s *Service) placeOrder(ctx context.Context, userID, orderNumber, paymentMethod, notes string) (*order.Order, error) {
	c, err := s.carts.FindByUserID(ctx, userID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return nil, order.NewEmptyCartError()
	}
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, order.NewEmptyCartError()
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := c.Items()
	lines := make([]order.LineRequest, 0, len(items))
	for _, item := range items {
		lines = append(lines, order.LineRequest{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Brand:     item.Brand(),
			Category:  item.Category(),
			Image:     item.Image(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		})
	}

	contact := u.Contact()
	o, err := order.NewOrder(order.PlaceOptions{
		UserID:      userID,
		OrderNumber: orderNumber,
		Customer: order.Customer{
			Name:    u.Name(),
			Email:   u.Email().Value(),
			Phone:   contact.Phone,
			Address: contact.Address,
			ZipCode: contact.ZipCode,
		},
		Lines:         lines,
		PaymentMethod: paymentMethod,
		Notes:         notes,
	})
	if err != nil {
		// stored cart lines were validated on the way in; a rejection here is corrupt data
		return nil, fmt.Errorf("build order from cart %s: %v", c.ID(), err)
	}

	if s.opts.EnforceStock {
		for _, item := range items {
			if err := s.products.DecrementStock(ctx, item.ProductID(), item.Quantity()); err != nil {
				return nil, err
			}
		}
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	if err := s.carts.DeleteByUserID(ctx, userID); err != nil {
		return nil, err
	}
	return o, nil
}
