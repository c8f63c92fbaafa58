// Package po holds the persistence objects shared by the relational and the
// in-memory stores. They carry no behaviour beyond conversion and must not
// declare GORM associations; aggregates load their children explicitly.
package po

import (
	"time"

	"storefront/domain/catalog"
	"storefront/domain/shared"

	"github.com/shopspring/decimal"
)

type ProductImagePO struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type ProductPO struct {
	ID          string           `gorm:"primaryKey;size:64"`
	Name        string           `gorm:"size:255;not null"`
	Description string           `gorm:"type:text"`
	Price       decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Stock       int              `gorm:"not null"`
	Brand       string           `gorm:"size:100"`
	Category    string           `gorm:"size:100"`
	Type        string           `gorm:"size:100"`
	Images      []ProductImagePO `gorm:"type:text;serializer:json"`
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime"`
}

func (ProductPO) TableName() string {
	return "products"
}

func FromProductDomain(p *catalog.Product) *ProductPO {
	dto := p.ToDTO()
	images := make([]ProductImagePO, 0, len(dto.Images))
	for _, img := range dto.Images {
		images = append(images, ProductImagePO{PublicID: img.PublicID, URL: img.URL})
	}
	return &ProductPO{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price.Decimal(),
		Stock:       dto.Stock,
		Brand:       dto.Brand,
		Category:    dto.Category,
		Type:        dto.Type,
		Images:      images,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}
}

func (po *ProductPO) ToDomain() *catalog.Product {
	images := make([]catalog.Image, 0, len(po.Images))
	for _, img := range po.Images {
		images = append(images, catalog.Image{PublicID: img.PublicID, URL: img.URL})
	}
	return catalog.RebuildFromDTO(catalog.ProductDTO{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		Price:       shared.NewMoney(po.Price),
		Stock:       po.Stock,
		Brand:       po.Brand,
		Category:    po.Category,
		Type:        po.Type,
		Images:      images,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	})
}
