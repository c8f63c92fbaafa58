// Package catalog is the read-mostly product store consulted by the cart and
// checkout. Product writes other than stock reservation belong to catalog
// administration, which lives outside this service.
package catalog

import (
	"time"

	"storefront/domain/shared"
)

// Image reference to a stored product image
type Image struct {
	PublicID string
	URL      string
}

// Product catalog entry
type Product struct {
	id          string
	name        string
	description string
	price       shared.Money
	stock       int
	brand       string
	category    string
	productType string
	images      []Image
	createdAt   time.Time
	updatedAt   time.Time
}

// ProductDTO carries product state in and out of repositories
type ProductDTO struct {
	ID          string
	Name        string
	Description string
	Price       shared.Money
	Stock       int
	Brand       string
	Category    string
	Type        string
	Images      []Image
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct validates price >= 0 and stock >= 0
func NewProduct(dto ProductDTO) (*Product, error) {
	if dto.ID == "" {
		return nil, shared.NewValidationError("product", "id", "product id is required")
	}
	if dto.Name == "" {
		return nil, shared.NewValidationError("product", "name", "product name is required")
	}
	if dto.Price.IsNegative() {
		return nil, shared.NewValidationError("product", "price", "price cannot be negative")
	}
	if dto.Stock < 0 {
		return nil, shared.NewValidationError("product", "stock", "stock cannot be negative")
	}
	now := time.Now()
	if dto.CreatedAt.IsZero() {
		dto.CreatedAt = now
	}
	if dto.UpdatedAt.IsZero() {
		dto.UpdatedAt = now
	}
	return RebuildFromDTO(dto), nil
}

// RebuildFromDTO restores a product loaded from storage. Repositories only.
func RebuildFromDTO(dto ProductDTO) *Product {
	images := make([]Image, len(dto.Images))
	copy(images, dto.Images)
	return &Product{
		id:          dto.ID,
		name:        dto.Name,
		description: dto.Description,
		price:       dto.Price,
		stock:       dto.Stock,
		brand:       dto.Brand,
		category:    dto.Category,
		productType: dto.Type,
		images:      images,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
	}
}

// ToDTO snapshot of the product state
func (p *Product) ToDTO() ProductDTO {
	images := make([]Image, len(p.images))
	copy(images, p.images)
	return ProductDTO{
		ID:          p.id,
		Name:        p.name,
		Description: p.description,
		Price:       p.price,
		Stock:       p.stock,
		Brand:       p.brand,
		Category:    p.category,
		Type:        p.productType,
		Images:      images,
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
	}
}

func (p *Product) ID() string           { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() shared.Money  { return p.price }
func (p *Product) Stock() int           { return p.stock }
func (p *Product) Brand() string        { return p.brand }
func (p *Product) Category() string     { return p.category }
func (p *Product) Type() string         { return p.productType }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

func (p *Product) Images() []Image {
	images := make([]Image, len(p.images))
	copy(images, p.images)
	return images
}

// PrimaryImageURL url of the first image, or ""
func (p *Product) PrimaryImageURL() string {
	if len(p.images) == 0 {
		return ""
	}
	return p.images[0].URL
}

// Reserve takes quantity units out of stock
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("product", "quantity", "quantity must be at least 1")
	}
	if p.stock < quantity {
		return NewOutOfStockError(p.id, p.name, p.stock, quantity)
	}
	p.stock -= quantity
	p.updatedAt = time.Now()
	return nil
}

// ChangePrice sets a new unit price
func (p *Product) ChangePrice(price shared.Money) error {
	if price.IsNegative() {
		return shared.NewValidationError("product", "price", "price cannot be negative")
	}
	p.price = price
	p.updatedAt = time.Now()
	return nil
}
