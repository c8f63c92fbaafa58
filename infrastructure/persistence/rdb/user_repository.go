package rdb

import (
	"context"
	"errors"

	"storefront/domain/shared"
	"storefront/domain/user"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/po"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if err := persistence.DB(ctx, r.db).Save(po.FromUserDomain(u)).Error; err != nil {
		if isDuplicateKey(err) {
			return shared.NewConflictError("user", "email already exists")
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var row po.UserPO
	if err := persistence.DB(ctx, r.db).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.NewUserNotFoundError(id)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *UserRepository) List(ctx context.Context, page shared.PageRequest) ([]*user.User, int64, error) {
	db := persistence.DB(ctx, r.db)

	var total int64
	if err := db.Model(&po.UserPO{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []po.UserPO
	if err := db.Order("created_at DESC").Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*user.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].ToDomain())
	}
	return users, total, nil
}

var _ user.Repository = (*UserRepository)(nil)
