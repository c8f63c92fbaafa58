package order

import (
	"context"

	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// UpdateStatus assigns any known status. A status-update notification is
// dispatched after commit only when the value actually changed.
func (s *Service) UpdateStatus(ctx context.Context, principal shared.Principal, orderID string, req UpdateStatusRequest) (*OrderResponse, error) {
	if err := principal.RequireAdmin(); err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var (
		o       *order.Order
		changed bool
	)
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		changed, err = o.ChangeStatus(status, req.Notes)
		if err != nil {
			return err
		}
		return s.orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Order status updated",
		zap.String("order_number", o.OrderNumber()),
		zap.String("status", string(status)),
		zap.Bool("changed", changed),
		zap.String("admin_id", principal.UserID))

	s.publish(ctx, o)
	resp := toOrderResponse(o)
	return &resp, nil
}
