package order

import (
	"context"
	"strings"

	"storefront/domain/order"
	"storefront/domain/shared"
)

// ListMyOrders pages through the caller's own orders, newest first
func (s *Service) ListMyOrders(ctx context.Context, principal shared.Principal, page, limit int) (*OrderPage, error) {
	if err := principal.RequireUser(); err != nil {
		return nil, err
	}
	pr := shared.NewPageRequest(page, limit)
	orders, total, err := s.orders.Search(ctx, order.NewByUserIDSpecification(principal.UserID), pr)
	if err != nil {
		return nil, err
	}
	return toOrderPage(orders, total, pr), nil
}

// GetMyOrder reports orders owned by someone else as not found
func (s *Service) GetMyOrder(ctx context.Context, principal shared.Principal, orderID string) (*OrderResponse, error) {
	if err := principal.RequireUser(); err != nil {
		return nil, err
	}
	o, err := s.ownedOrder(ctx, principal, orderID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

// ListAllOrders admin listing with optional status equality and text search
func (s *Service) ListAllOrders(ctx context.Context, principal shared.Principal, q AdminOrderQuery) (*OrderPage, error) {
	if err := principal.RequireAdmin(); err != nil {
		return nil, err
	}

	var statusSpec shared.Specification[*order.Order]
	if filter := strings.TrimSpace(q.Status); filter != "" && filter != "all" {
		status, err := order.ParseStatus(filter)
		if err != nil {
			return nil, err
		}
		statusSpec = order.NewByStatusSpecification(status)
	}

	pr := shared.NewPageRequest(q.Page, q.Limit)
	spec := shared.And(statusSpec, order.NewSearchTextSpecification(q.Search))
	orders, total, err := s.orders.Search(ctx, spec, pr)
	if err != nil {
		return nil, err
	}
	return toOrderPage(orders, total, pr), nil
}

func (s *Service) GetAnyOrder(ctx context.Context, principal shared.Principal, orderID string) (*OrderResponse, error) {
	if err := principal.RequireAdmin(); err != nil {
		return nil, err
	}
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

// ownedOrder loads orderID when principal owns it or is an admin
func (s *Service) ownedOrder(ctx context.Context, principal shared.Principal, orderID string) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID() != principal.UserID && !principal.IsAdmin() {
		return nil, order.NewOrderNotFoundError(orderID)
	}
	return o, nil
}
