package cart

import (
	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/shared"
)

func emptyCart(userID string) *CartResponse {
	return &CartResponse{
		UserID:     userID,
		Items:      []CartItemResponse{},
		TotalPrice: shared.Zero,
	}
}

func toCartResponse(userID string, c *cart.Cart) *CartResponse {
	resp := emptyCart(userID)
	for _, item := range c.Items() {
		resp.Items = append(resp.Items, CartItemResponse{
			ID:        item.ID(),
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
			Name:      item.Name(),
			Brand:     item.Brand(),
			Category:  item.Category(),
			Image:     item.Image(),
			Total:     item.Total(),
		})
	}
	resp.TotalPrice = c.TotalPrice()
	resp.TotalItems = c.TotalItems()
	return resp
}

func attachProducts(resp *CartResponse, products []*catalog.Product) {
	byID := make(map[string]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID()] = p
	}
	for i := range resp.Items {
		p, ok := byID[resp.Items[i].ProductID]
		if !ok {
			continue
		}
		resp.Items[i].Product = &ProductSummary{
			ID:          p.ID(),
			Name:        p.Name(),
			Description: p.Description(),
			Price:       p.Price(),
			Stock:       p.Stock(),
			Brand:       p.Brand(),
			Category:    p.Category(),
			Type:        p.Type(),
			Image:       p.PrimaryImageURL(),
		}
	}
}
