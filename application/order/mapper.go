package order

import (
	"storefront/domain/order"
	"storefront/domain/shared"
)

func toOrderResponse(o *order.Order) OrderResponse {
	customer := o.Customer()
	totals := o.Totals()
	lines := o.Lines()

	resp := OrderResponse{
		ID:          o.ID(),
		OrderNumber: o.OrderNumber(),
		UserID:      o.UserID(),
		CustomerDetails: CustomerResponse{
			Name:    customer.Name,
			Email:   customer.Email,
			Phone:   customer.Phone,
			Address: customer.Address,
			ZipCode: customer.ZipCode,
		},
		Lines:         make([]OrderLineResponse, 0, len(lines)),
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		TotalAmount:   totals.Total,
		PaymentMethod: o.PaymentMethod(),
		Status:        string(o.Status()),
		Notes:         o.Notes(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ID:        l.ID(),
			ProductID: l.ProductID(),
			Name:      l.Name(),
			Brand:     l.Brand(),
			Category:  l.Category(),
			Image:     l.Image(),
			Quantity:  l.Quantity(),
			Price:     l.Price(),
			Total:     l.Total(),
		})
	}
	return resp
}

func toOrderPage(orders []*order.Order, total int64, page shared.PageRequest) *OrderPage {
	result := &OrderPage{
		Orders:     make([]OrderResponse, 0, len(orders)),
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: page.TotalPages(total),
	}
	for _, o := range orders {
		result.Orders = append(result.Orders, toOrderResponse(o))
	}
	return result
}
