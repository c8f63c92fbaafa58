package po

import (
	"time"

	"storefront/domain/cart"
	"storefront/domain/shared"

	"github.com/shopspring/decimal"
)

// CartPO one row per user; user_id carries a unique index
type CartPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CartPO) TableName() string {
	return "carts"
}

// CartItemPO Position keeps insertion order stable across reloads
type CartItemPO struct {
	ID        string          `gorm:"primaryKey;size:64"`
	CartID    string          `gorm:"size:64;index;not null"`
	Position  int             `gorm:"not null"`
	ProductID string          `gorm:"size:64;not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Name      string          `gorm:"size:255;not null"`
	Brand     string          `gorm:"size:100"`
	Category  string          `gorm:"size:100"`
	Image     string          `gorm:"size:500"`
}

func (CartItemPO) TableName() string {
	return "cart_items"
}

func FromCartDomain(c *cart.Cart) (*CartPO, []CartItemPO) {
	dto := c.ToDTO()
	items := make([]CartItemPO, 0, len(dto.Items))
	for i, it := range dto.Items {
		items = append(items, CartItemPO{
			ID:        it.ID,
			CartID:    dto.ID,
			Position:  i,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price.Decimal(),
			Name:      it.Name,
			Brand:     it.Brand,
			Category:  it.Category,
			Image:     it.Image,
		})
	}
	return &CartPO{
		ID:        dto.ID,
		UserID:    dto.UserID,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}, items
}

// ToDomain expects items sorted by Position
func (po *CartPO) ToDomain(items []CartItemPO) *cart.Cart {
	dtos := make([]cart.ItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, cart.ItemDTO{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     shared.NewMoney(it.Price),
			Name:      it.Name,
			Brand:     it.Brand,
			Category:  it.Category,
			Image:     it.Image,
		})
	}
	return cart.RebuildFromDTO(cart.ReconstructionDTO{
		ID:        po.ID,
		UserID:    po.UserID,
		Items:     dtos,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}
