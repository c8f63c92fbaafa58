package memory

import (
	"context"

	"storefront/domain/cart"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/po"
	"storefront/infrastructure/persistence/retry"
)

type CartRepository struct {
	store *Store
}

func NewCartRepository(store *Store) *CartRepository {
	return &CartRepository{store: store}
}

func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	var found *cart.Cart
	err := r.store.read(ctx, func(st *state) error {
		rec, ok := st.carts[userID]
		if !ok {
			return cart.NewCartNotFoundError(userID)
		}
		found = rec.cart.ToDomain(rec.items)
		return nil
	})
	return found, err
}

func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.store.write(ctx, func(st *state) error {
		existing, exists := st.carts[c.UserID()]
		if c.IsNew() && exists {
			return retry.Retryable(shared.NewConflictError("cart", "cart already exists for user"))
		}
		header, items := po.FromCartDomain(c)
		if exists {
			header.CreatedAt = existing.cart.CreatedAt
		}
		st.carts[c.UserID()] = cartRecord{cart: *header, items: items}
		c.MarkPersisted()
		return nil
	})
}

func (r *CartRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.store.write(ctx, func(st *state) error {
		delete(st.carts, userID)
		return nil
	})
}

var _ cart.Repository = (*CartRepository)(nil)
