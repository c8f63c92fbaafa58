package cart

import "storefront/domain/shared"

// AddItemRequest quantity defaults to 1 when omitted
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse user cart. An absent cart is rendered with no items and a zero total.
type CartResponse struct {
	UserID     string             `json:"user_id"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice shared.Money       `json:"total_price"`
	TotalItems int                `json:"total_items"`
}

type CartItemResponse struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Price     shared.Money `json:"price"`
	Name      string       `json:"name"`
	Brand     string       `json:"brand,omitempty"`
	Category  string       `json:"category,omitempty"`
	Image     string       `json:"image,omitempty"`
	Total     shared.Money `json:"total"`

	// Product live catalog details; absent when the lookup failed or the product is gone
	Product *ProductSummary `json:"product,omitempty"`
}

type ProductSummary struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       shared.Money `json:"price"`
	Stock       int          `json:"stock"`
	Brand       string       `json:"brand,omitempty"`
	Category    string       `json:"category,omitempty"`
	Type        string       `json:"type,omitempty"`
	Image       string       `json:"image,omitempty"`
}
