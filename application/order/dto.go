package order

import (
	"time"

	"storefront/domain/shared"
)

// CheckoutRequest both fields are optional
type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// AdminOrderQuery Status "" or "all" disables the status filter
type AdminOrderQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
}

type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	UserID          string              `json:"user_id"`
	CustomerDetails CustomerResponse    `json:"customer_details"`
	Lines           []OrderLineResponse `json:"lines"`
	Subtotal        shared.Money        `json:"subtotal"`
	Tax             shared.Money        `json:"tax"`
	TotalAmount     shared.Money        `json:"total_amount"`
	PaymentMethod   string              `json:"payment_method"`
	Status          string              `json:"status"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type CustomerResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
}

type OrderLineResponse struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Brand     string       `json:"brand,omitempty"`
	Category  string       `json:"category,omitempty"`
	Image     string       `json:"image,omitempty"`
	Quantity  int          `json:"quantity"`
	Price     shared.Money `json:"price"`
	Total     shared.Money `json:"total"`
}

// OrderPage one page of orders plus paging metadata
type OrderPage struct {
	Orders     []OrderResponse
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// Receipt rendered receipt ready to stream
type Receipt struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ReceiptStatusResponse struct {
	Available   bool   `json:"available"`
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
}
