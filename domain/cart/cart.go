/*
Package cart is the per-user pre-purchase working state.

A user owns at most one cart. Items are snapshots of the catalog taken when
they were added: price, name, brand, category and image are copied in and
never re-read from the live product, so later catalog edits do not change
what the customer pays.
*/
package cart

import (
	"fmt"
	"time"

	"storefront/domain/catalog"
	"storefront/domain/shared"

	"github.com/google/uuid"
)

// Cart aggregate root, identified by its owner
type Cart struct {
	id        string
	userID    string
	items     []Item
	createdAt time.Time
	updatedAt time.Time
	isNew     bool
}

// Item one product line with its snapshot
type Item struct {
	id        string
	productID string
	quantity  int
	price     shared.Money
	name      string
	brand     string
	category  string
	image     string
}

// New empty cart for userID. Not persisted until the first Save.
func New(userID string) (*Cart, error) {
	if userID == "" {
		return nil, shared.NewValidationError("cart", "user_id", "user id is required")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate cart ID: %w", err)
	}
	now := time.Now()
	return &Cart{
		id:        id.String(),
		userID:    userID,
		createdAt: now,
		updatedAt: now,
		isNew:     true,
	}, nil
}

// AddItem merges quantity into the existing line for the product, or appends
// a new line snapshotting the product as it is now.
func (c *Cart) AddItem(product *catalog.Product, quantity int) (Item, error) {
	if quantity < 1 {
		return Item{}, NewInvalidQuantityError(quantity)
	}

	for i := range c.items {
		if c.items[i].productID == product.ID() {
			c.items[i].quantity += quantity
			c.updatedAt = time.Now()
			return c.items[i], nil
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Item{}, fmt.Errorf("failed to generate cart item ID: %w", err)
	}
	item := Item{
		id:        id.String(),
		productID: product.ID(),
		quantity:  quantity,
		price:     product.Price(),
		name:      product.Name(),
		brand:     product.Brand(),
		category:  product.Category(),
		image:     product.PrimaryImageURL(),
	}
	c.items = append(c.items, item)
	c.updatedAt = time.Now()
	return item, nil
}

// UpdateItemQuantity sets the quantity of itemID
func (c *Cart) UpdateItemQuantity(itemID string, quantity int) error {
	if quantity < 1 {
		return NewInvalidQuantityError(quantity)
	}
	for i := range c.items {
		if c.items[i].id == itemID {
			c.items[i].quantity = quantity
			c.updatedAt = time.Now()
			return nil
		}
	}
	return NewCartItemNotFoundError(itemID)
}

// RemoveItem drops itemID. Removing an absent item is a no-op.
func (c *Cart) RemoveItem(itemID string) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.id != itemID {
			kept = append(kept, item)
		}
	}
	if len(kept) != len(c.items) {
		c.updatedAt = time.Now()
	}
	c.items = kept
}

// TotalPrice sum of snapshot price times quantity
func (c *Cart) TotalPrice() shared.Money {
	total := shared.Zero
	for _, item := range c.items {
		total = total.Add(item.Total())
	}
	return total
}

// TotalItems sum of quantities
func (c *Cart) TotalItems() int {
	n := 0
	for _, item := range c.items {
		n += item.quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) ID() string           { return c.id }
func (c *Cart) UserID() string       { return c.userID }
func (c *Cart) CreatedAt() time.Time { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }

// IsNew reports whether the cart has never been saved
func (c *Cart) IsNew() bool { return c.isNew }

// MarkPersisted is called by repositories after a successful insert
func (c *Cart) MarkPersisted() { c.isNew = false }

// Items returns a copy of the lines in insertion order
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// ProductIDs distinct product ids in the cart
func (c *Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c.items))
	for _, item := range c.items {
		ids = append(ids, item.productID)
	}
	return ids
}

func (i Item) ID() string          { return i.id }
func (i Item) ProductID() string   { return i.productID }
func (i Item) Quantity() int       { return i.quantity }
func (i Item) Price() shared.Money { return i.price }
func (i Item) Name() string        { return i.name }
func (i Item) Brand() string       { return i.brand }
func (i Item) Category() string    { return i.category }
func (i Item) Image() string       { return i.image }

// Total snapshot price times quantity
func (i Item) Total() shared.Money { return i.price.Times(i.quantity) }

// ReconstructionDTO stored cart state. Repositories only.
type ReconstructionDTO struct {
	ID        string
	UserID    string
	Items     []ItemDTO
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemDTO stored line
type ItemDTO struct {
	ID        string
	ProductID string
	Quantity  int
	Price     shared.Money
	Name      string
	Brand     string
	Category  string
	Image     string
}

// RebuildFromDTO restores a persisted cart
func RebuildFromDTO(dto ReconstructionDTO) *Cart {
	items := make([]Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, Item{
			id:        it.ID,
			productID: it.ProductID,
			quantity:  it.Quantity,
			price:     it.Price,
			name:      it.Name,
			brand:     it.Brand,
			category:  it.Category,
			image:     it.Image,
		})
	}
	return &Cart{
		id:        dto.ID,
		userID:    dto.UserID,
		items:     items,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

// ToDTO flattens the cart for storage
func (c *Cart) ToDTO() ReconstructionDTO {
	items := make([]ItemDTO, 0, len(c.items))
	for _, it := range c.items {
		items = append(items, ItemDTO{
			ID:        it.id,
			ProductID: it.productID,
			Quantity:  it.quantity,
			Price:     it.price,
			Name:      it.name,
			Brand:     it.brand,
			Category:  it.category,
			Image:     it.image,
		})
	}
	return ReconstructionDTO{
		ID:        c.id,
		UserID:    c.userID,
		Items:     items,
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
	}
}
