package order

import (
	"context"

	"storefront/application/notification"
	"storefront/domain/shared"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

const receiptContentType = "application/pdf"

// DownloadReceipt renders the receipt of an order owned by the caller; admins may
// download any receipt. Renderer failures surface as dependency failures.
func (s *Service) DownloadReceipt(ctx context.Context, principal shared.Principal, orderID string) (*Receipt, error) {
	if err := principal.RequireUser(); err != nil {
		return nil, err
	}
	o, err := s.ownedOrder(ctx, principal, orderID)
	if err != nil {
		return nil, err
	}
	if s.renderer == nil {
		return nil, shared.NewDependencyError("receipt renderer", errRendererMissing)
	}

	data, err := s.renderer.RenderReceipt(notification.NewOrderView(o))
	if err != nil {
		logger.FromContext(ctx).Warn("Receipt rendering failed",
			zap.String("order_number", o.OrderNumber()),
			zap.Error(err))
		return nil, shared.NewDependencyError("receipt renderer", err)
	}

	return &Receipt{
		Filename:    "Receipt-" + o.OrderNumber() + ".pdf",
		ContentType: receiptContentType,
		Data:        data,
	}, nil
}

func (s *Service) ReceiptStatus(ctx context.Context, principal shared.Principal, orderID string) (*ReceiptStatusResponse, error) {
	if err := principal.RequireUser(); err != nil {
		return nil, err
	}
	o, err := s.ownedOrder(ctx, principal, orderID)
	if err != nil {
		return nil, err
	}
	return &ReceiptStatusResponse{
		Available:   s.renderer != nil,
		OrderID:     o.ID(),
		OrderNumber: o.OrderNumber(),
	}, nil
}
