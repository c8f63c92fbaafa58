package po

import (
	"time"

	"storefront/domain/order"
	"storefront/domain/shared"

	"github.com/shopspring/decimal"
)

// OrderPO order header. order_number carries a unique index.
type OrderPO struct {
	ID              string          `gorm:"primaryKey;size:64"`
	OrderNumber     string          `gorm:"size:64;uniqueIndex;not null"`
	UserID          string          `gorm:"size:64;index;not null"`
	CustomerName    string          `gorm:"size:100;not null"`
	CustomerEmail   string          `gorm:"size:255;not null"`
	CustomerPhone   string          `gorm:"size:50"`
	CustomerAddress string          `gorm:"size:500"`
	CustomerZipCode string          `gorm:"size:20"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tax             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod   string          `gorm:"size:50;not null"`
	Status          string          `gorm:"size:20;index;not null"`
	Notes           string          `gorm:"type:text"`
	Version         int             `gorm:"default:0"`
	CreatedAt       time.Time       `gorm:"index"`
	UpdatedAt       time.Time
}

func (OrderPO) TableName() string {
	return "orders"
}

type OrderLinePO struct {
	ID        string          `gorm:"primaryKey;size:64"`
	OrderID   string          `gorm:"size:64;index;not null"`
	Position  int             `gorm:"not null"`
	ProductID string          `gorm:"size:64;not null"`
	Name      string          `gorm:"size:255;not null"`
	Brand     string          `gorm:"size:100"`
	Category  string          `gorm:"size:100"`
	Image     string          `gorm:"size:500"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (OrderLinePO) TableName() string {
	return "order_lines"
}

func FromOrderDomain(o *order.Order) (*OrderPO, []OrderLinePO) {
	dto := o.ToDTO()
	lines := o.Lines()
	linePOs := make([]OrderLinePO, 0, len(lines))
	for i, l := range lines {
		linePOs = append(linePOs, OrderLinePO{
			ID:        l.ID(),
			OrderID:   dto.ID,
			Position:  i,
			ProductID: l.ProductID(),
			Name:      l.Name(),
			Brand:     l.Brand(),
			Category:  l.Category(),
			Image:     l.Image(),
			Quantity:  l.Quantity(),
			Price:     l.Price().Decimal(),
			Total:     l.Total().Decimal(),
		})
	}
	return &OrderPO{
		ID:              dto.ID,
		OrderNumber:     dto.OrderNumber,
		UserID:          dto.UserID,
		CustomerName:    dto.Customer.Name,
		CustomerEmail:   dto.Customer.Email,
		CustomerPhone:   dto.Customer.Phone,
		CustomerAddress: dto.Customer.Address,
		CustomerZipCode: dto.Customer.ZipCode,
		Subtotal:        dto.Subtotal.Decimal(),
		Tax:             dto.Tax.Decimal(),
		TotalAmount:     dto.Total.Decimal(),
		PaymentMethod:   dto.PaymentMethod,
		Status:          string(dto.Status),
		Notes:           dto.Notes,
		Version:         dto.Version,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	}, linePOs
}

// ToDomain expects lines sorted by Position
func (po *OrderPO) ToDomain(lines []OrderLinePO) *order.Order {
	dtos := make([]order.LineDTO, 0, len(lines))
	for _, l := range lines {
		dtos = append(dtos, order.LineDTO{
			ID:        l.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Brand:     l.Brand,
			Category:  l.Category,
			Image:     l.Image,
			Quantity:  l.Quantity,
			Price:     shared.NewMoney(l.Price),
		})
	}
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:          po.ID,
		OrderNumber: po.OrderNumber,
		UserID:      po.UserID,
		Customer: order.Customer{
			Name:    po.CustomerName,
			Email:   po.CustomerEmail,
			Phone:   po.CustomerPhone,
			Address: po.CustomerAddress,
			ZipCode: po.CustomerZipCode,
		},
		Lines:         dtos,
		Subtotal:      shared.NewMoney(po.Subtotal),
		Tax:           shared.NewMoney(po.Tax),
		Total:         shared.NewMoney(po.TotalAmount),
		PaymentMethod: po.PaymentMethod,
		Status:        order.Status(po.Status),
		Notes:         po.Notes,
		Version:       po.Version,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	})
}
