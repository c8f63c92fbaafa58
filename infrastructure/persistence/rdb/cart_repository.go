package rdb

import (
	"context"
	"errors"
	"time"

	"storefront/domain/cart"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/po"
	"storefront/infrastructure/persistence/retry"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository one cart row per user plus its item rows.
// Inside a unit of work the cart row is read FOR UPDATE, serializing
// concurrent mutations of the same cart.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	db := persistence.DB(ctx, r.db)

	query := db
	if persistence.InTransaction(ctx) {
		query = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var header po.CartPO
	if err := query.First(&header, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.NewCartNotFoundError(userID)
		}
		return nil, err
	}

	var items []po.CartItemPO
	if err := db.Where("cart_id = ?", header.ID).Order("position ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return header.ToDomain(items), nil
}

// Save inserts a new cart or rewrites the items of an existing one. A racing
// first insert for the same user hits the unique index on user_id and is
// reported as retryable so the unit of work re-reads the winner's cart.
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	header, items := po.FromCartDomain(c)

	save := func(tx *gorm.DB) error {
		if c.IsNew() {
			if err := tx.Create(header).Error; err != nil {
				if isDuplicateKey(err) {
					return retry.Retryable(shared.NewConflictError("cart", "cart already exists for user"))
				}
				return err
			}
		} else {
			if err := tx.Model(&po.CartPO{}).
				Where("id = ?", header.ID).
				Update("updated_at", time.Now()).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("cart_id = ?", header.ID).Delete(&po.CartItemPO{}).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	if tx := persistence.TxFromContext(ctx); tx != nil {
		err = save(tx)
	} else {
		err = r.db.WithContext(ctx).Transaction(save)
	}
	if err != nil {
		return err
	}
	c.MarkPersisted()
	return nil
}

func (r *CartRepository) DeleteByUserID(ctx context.Context, userID string) error {
	remove := func(tx *gorm.DB) error {
		var header po.CartPO
		if err := tx.Select("id").First(&header, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("cart_id = ?", header.ID).Delete(&po.CartItemPO{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", header.ID).Delete(&po.CartPO{}).Error
	}

	if tx := persistence.TxFromContext(ctx); tx != nil {
		return remove(tx)
	}
	return r.db.WithContext(ctx).Transaction(remove)
}

var _ cart.Repository = (*CartRepository)(nil)
