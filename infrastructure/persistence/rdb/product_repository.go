package rdb

import (
	"context"
	"errors"

	"storefront/domain/catalog"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/po"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var row po.ProductPO
	if err := persistence.DB(ctx, r.db).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NewProductNotFoundError(id)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []po.ProductPO
	if err := persistence.DB(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]*catalog.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].ToDomain())
	}
	return products, nil
}

// DecrementStock is a conditional update; it never drives stock below zero
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	db := persistence.DB(ctx, r.db)
	result := db.Model(&po.ProductPO{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return catalog.NewOutOfStockError(id, current.Name(), current.Stock(), quantity)
}

func (r *ProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return persistence.DB(ctx, r.db).Save(po.FromProductDomain(p)).Error
}

var _ catalog.Repository = (*ProductRepository)(nil)
