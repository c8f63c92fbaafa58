package order

import (
	"fmt"

	"storefront/domain/shared"

	"github.com/google/uuid"
)

// Line one product entry of an order. total is always price * quantity.
type Line struct {
	id        string
	productID string
	name      string
	brand     string
	category  string
	image     string
	quantity  int
	price     shared.Money
	total     shared.Money
}

// LineRequest snapshot of a cart item handed to NewOrder
type LineRequest struct {
	ProductID string
	Name      string
	Brand     string
	Category  string
	Image     string
	Quantity  int
	Price     shared.Money
}

// NewLine validates quantity >= 1 and price >= 0 and computes the line total
func NewLine(req LineRequest) (Line, error) {
	if req.ProductID == "" {
		return Line{}, NewInvalidLineError("product_id", "product reference is required")
	}
	if req.Quantity < 1 {
		return Line{}, NewInvalidLineError("quantity", fmt.Sprintf("quantity must be at least 1, got %d", req.Quantity))
	}
	if req.Price.IsNegative() {
		return Line{}, NewInvalidLineError("price", "price cannot be negative")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Line{}, fmt.Errorf("failed to generate order line ID: %w", err)
	}
	return Line{
		id:        id.String(),
		productID: req.ProductID,
		name:      req.Name,
		brand:     req.Brand,
		category:  req.Category,
		image:     req.Image,
		quantity:  req.Quantity,
		price:     req.Price,
		total:     req.Price.Times(req.Quantity),
	}, nil
}

func (l Line) ID() string          { return l.id }
func (l Line) ProductID() string   { return l.productID }
func (l Line) Name() string        { return l.name }
func (l Line) Brand() string       { return l.brand }
func (l Line) Category() string    { return l.category }
func (l Line) Image() string       { return l.image }
func (l Line) Quantity() int       { return l.quantity }
func (l Line) Price() shared.Money { return l.price }
func (l Line) Total() shared.Money { return l.total }

// LineDTO stored line
type LineDTO struct {
	ID        string
	ProductID string
	Name      string
	Brand     string
	Category  string
	Image     string
	Quantity  int
	Price     shared.Money
}

// RebuildLineFromDTO restores a line. The total is recomputed from price and quantity.
func RebuildLineFromDTO(dto LineDTO) Line {
	return Line{
		id:        dto.ID,
		productID: dto.ProductID,
		name:      dto.Name,
		brand:     dto.Brand,
		category:  dto.Category,
		image:     dto.Image,
		quantity:  dto.Quantity,
		price:     dto.Price,
		total:     dto.Price.Times(dto.Quantity),
	}
}

func (l Line) ToDTO() LineDTO {
	return LineDTO{
		ID:        l.id,
		ProductID: l.productID,
		Name:      l.name,
		Brand:     l.brand,
		Category:  l.category,
		Image:     l.image,
		Quantity:  l.quantity,
		Price:     l.price,
	}
}
