package memory

import (
	"context"

	"storefront/domain/catalog"
	"storefront/infrastructure/persistence/po"
)

type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var found *catalog.Product
	err := r.store.read(ctx, func(st *state) error {
		rec, ok := st.products[id]
		if !ok {
			return catalog.NewProductNotFoundError(id)
		}
		found = rec.ToDomain()
		return nil
	})
	return found, err
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*catalog.Product, error) {
	var products []*catalog.Product
	err := r.store.read(ctx, func(st *state) error {
		for _, id := range ids {
			if rec, ok := st.products[id]; ok {
				products = append(products, rec.ToDomain())
			}
		}
		return nil
	})
	return products, err
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	return r.store.write(ctx, func(st *state) error {
		rec, ok := st.products[id]
		if !ok {
			return catalog.NewProductNotFoundError(id)
		}
		p := rec.ToDomain()
		if err := p.Reserve(quantity); err != nil {
			return err
		}
		st.products[id] = *po.FromProductDomain(p)
		return nil
	})
}

func (r *ProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return r.store.write(ctx, func(st *state) error {
		st.products[p.ID()] = *po.FromProductDomain(p)
		return nil
	})
}

var _ catalog.Repository = (*ProductRepository)(nil)
