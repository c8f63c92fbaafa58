package memory

import (
	"context"
	"sort"
	"time"

	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/po"
)

type OrderRepository struct {
	store *Store
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.store.write(ctx, func(st *state) error {
		header, lines := po.FromOrderDomain(o)

		if o.IsNew() {
			if _, taken := st.orderNumbers[header.OrderNumber]; taken {
				return order.NewDuplicateOrderNumberError(header.OrderNumber)
			}
			st.orders[header.ID] = orderRecord{header: *header, lines: lines}
			st.orderNumbers[header.OrderNumber] = header.ID
			o.MarkPersisted()
			return nil
		}

		existing, ok := st.orders[header.ID]
		if !ok {
			return order.NewOrderNotFoundError(header.ID)
		}
		if existing.header.Version != o.Version() {
			return order.NewConcurrentModificationError(header.ID)
		}
		existing.header.Status = header.Status
		existing.header.Notes = header.Notes
		existing.header.UpdatedAt = time.Now()
		existing.header.Version++
		st.orders[header.ID] = existing
		o.IncrementVersionForSave()
		return nil
	})
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var found *order.Order
	err := r.store.read(ctx, func(st *state) error {
		rec, ok := st.orders[id]
		if !ok {
			return order.NewOrderNotFoundError(id)
		}
		found = rec.header.ToDomain(rec.lines)
		return nil
	})
	return found, err
}

func (r *OrderRepository) Search(ctx context.Context, spec shared.Specification[*order.Order], page shared.PageRequest) ([]*order.Order, int64, error) {
	var (
		matched []*order.Order
		total   int64
	)
	err := r.store.read(ctx, func(st *state) error {
		all := make([]*order.Order, 0, len(st.orders))
		for _, rec := range st.orders {
			o := rec.header.ToDomain(rec.lines)
			if shared.Satisfies(ctx, spec, o) {
				all = append(all, o)
			}
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].CreatedAt().Equal(all[j].CreatedAt()) {
				return all[i].OrderNumber() > all[j].OrderNumber()
			}
			return all[i].CreatedAt().After(all[j].CreatedAt())
		})
		total = int64(len(all))
		matched = paginate(all, page)
		return nil
	})
	return matched, total, err
}

var _ order.Repository = (*OrderRepository)(nil)
