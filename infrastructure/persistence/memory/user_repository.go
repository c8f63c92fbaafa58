package memory

import (
	"context"
	"sort"

	"storefront/domain/shared"
	"storefront/domain/user"
	"storefront/infrastructure/persistence/po"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	return r.store.write(ctx, func(st *state) error {
		for id, existing := range st.users {
			if id != u.ID() && existing.Email == u.Email().Value() {
				return shared.NewConflictError("user", "email already exists")
			}
		}
		st.users[u.ID()] = *po.FromUserDomain(u)
		return nil
	})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var found *user.User
	err := r.store.read(ctx, func(st *state) error {
		rec, ok := st.users[id]
		if !ok {
			return user.NewUserNotFoundError(id)
		}
		found = rec.ToDomain()
		return nil
	})
	return found, err
}

func (r *UserRepository) List(ctx context.Context, page shared.PageRequest) ([]*user.User, int64, error) {
	var (
		users []*user.User
		total int64
	)
	err := r.store.read(ctx, func(st *state) error {
		records := make([]po.UserPO, 0, len(st.users))
		for _, rec := range st.users {
			records = append(records, rec)
		}
		sort.Slice(records, func(i, j int) bool {
			if records[i].CreatedAt.Equal(records[j].CreatedAt) {
				return records[i].ID > records[j].ID
			}
			return records[i].CreatedAt.After(records[j].CreatedAt)
		})

		total = int64(len(records))
		for _, rec := range paginate(records, page) {
			users = append(users, rec.ToDomain())
		}
		return nil
	})
	return users, total, err
}

func paginate[T any](records []T, page shared.PageRequest) []T {
	start := page.Offset()
	if start < 0 || start >= len(records) {
		return nil
	}
	end := len(records)
	if page.Limit < end-start {
		end = start + page.Limit
	}
	return records[start:end]
}

var _ user.Repository = (*UserRepository)(nil)
