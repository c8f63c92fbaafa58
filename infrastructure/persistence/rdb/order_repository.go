package rdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/po"
	"storefront/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

// OrderRepository orders plus order_lines. Lines are written once, with the
// header, and never change afterwards.
type OrderRepository struct {
	db         *gorm.DB
	translator *specification.OrderTranslator
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{
		db:         db,
		translator: specification.NewOrderTranslator(),
	}
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if o.IsNew() {
		return r.insert(ctx, o)
	}
	return r.update(ctx, o)
}

func (r *OrderRepository) insert(ctx context.Context, o *order.Order) error {
	header, lines := po.FromOrderDomain(o)

	write := func(tx *gorm.DB) error {
		if err := tx.Create(header).Error; err != nil {
			if isDuplicateKey(err) {
				return order.NewDuplicateOrderNumberError(header.OrderNumber)
			}
			return err
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return fmt.Errorf("insert order lines: %w", err)
			}
		}
		return nil
	}

	var err error
	if tx := persistence.TxFromContext(ctx); tx != nil {
		err = write(tx)
	} else {
		err = r.db.WithContext(ctx).Transaction(write)
	}
	if err != nil {
		return err
	}
	o.MarkPersisted()
	return nil
}

// update writes the mutable header fields guarded by the version column
func (r *OrderRepository) update(ctx context.Context, o *order.Order) error {
	db := persistence.DB(ctx, r.db)
	result := db.Model(&po.OrderPO{}).
		Where("id = ? AND version = ?", o.ID(), o.Version()).
		Updates(map[string]interface{}{
			"status":     string(o.Status()),
			"notes":      o.Notes(),
			"version":    o.Version() + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&po.OrderPO{}).Where("id = ?", o.ID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return order.NewOrderNotFoundError(o.ID())
		}
		return order.NewConcurrentModificationError(o.ID())
	}
	o.IncrementVersionForSave()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := persistence.DB(ctx, r.db)

	var header po.OrderPO
	if err := db.First(&header, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, err
	}

	var lines []po.OrderLinePO
	if err := db.Where("order_id = ?", id).Order("position ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return header.ToDomain(lines), nil
}

func (r *OrderRepository) Search(ctx context.Context, spec shared.Specification[*order.Order], page shared.PageRequest) ([]*order.Order, int64, error) {
	scope, ok := r.translator.Translate(spec)
	if !ok {
		return nil, 0, fmt.Errorf("order search: specification %T has no SQL translation", spec)
	}

	db := persistence.DB(ctx, r.db)
	filtered := func() *gorm.DB {
		q := db.Model(&po.OrderPO{})
		if scope != nil {
			q = q.Scopes(scope)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	var headers []po.OrderPO
	if err := filtered().
		Order("created_at DESC").Order("order_number DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&headers).Error; err != nil {
		return nil, 0, err
	}
	if len(headers) == 0 {
		return nil, total, nil
	}

	ids := make([]string, 0, len(headers))
	for _, h := range headers {
		ids = append(ids, h.ID)
	}
	var lines []po.OrderLinePO
	if err := db.Where("order_id IN ?", ids).Order("position ASC").Find(&lines).Error; err != nil {
		return nil, 0, err
	}
	byOrder := make(map[string][]po.OrderLinePO, len(headers))
	for _, l := range lines {
		byOrder[l.OrderID] = append(byOrder[l.OrderID], l)
	}

	orders := make([]*order.Order, 0, len(headers))
	for i := range headers {
		orders = append(orders, headers[i].ToDomain(byOrder[headers[i].ID]))
	}
	return orders, total, nil
}

var _ order.Repository = (*OrderRepository)(nil)
