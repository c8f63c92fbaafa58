// Package seed loads demo catalog entries and accounts into an empty store
// (database.seed=true). Both the memory and the relational stores use it.
package seed

import (
	"context"

	"storefront/domain/catalog"
	"storefront/domain/shared"
	"storefront/domain/user"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// Demo account ids, stable so development tokens can be minted for them
const (
	AdminUserID    = "user-admin"
	CustomerUserID = "user-customer"
)

var products = []catalog.ProductDTO{
	{
		ID: "prod-dutch-oven", Name: "Enameled Dutch Oven 5.5 qt",
		Description: "Cast iron with a chip resistant enamel finish",
		Price:       shared.MoneyFromFloat(4999), Stock: 25,
		Brand: "Le Creuset", Category: "Cookware", Type: "Pots",
		Images: []catalog.Image{{PublicID: "products/dutch-oven", URL: "https://res.cloudinary.com/demo/image/upload/products/dutch-oven.jpg"}},
	},
	{
		ID: "prod-chef-knife", Name: "Chef's Knife 8\"",
		Description: "High carbon stainless steel blade",
		Price:       shared.MoneyFromFloat(2450), Stock: 40,
		Brand: "Wusthof", Category: "Cutlery", Type: "Knives",
		Images: []catalog.Image{{PublicID: "products/chef-knife", URL: "https://res.cloudinary.com/demo/image/upload/products/chef-knife.jpg"}},
	},
	{
		ID: "prod-spatula", Name: "Silicone Spatula Set",
		Description: "Heat resistant up to 315C, set of three",
		Price:       shared.MoneyFromFloat(399.50), Stock: 120,
		Brand: "OXO", Category: "Utensils", Type: "Spatulas",
	},
	{
		ID: "prod-stand-mixer", Name: "Stand Mixer 4.8L",
		Description: "Tilt head mixer with ten speeds",
		Price:       shared.MoneyFromFloat(18990), Stock: 6,
		Brand: "KitchenAid", Category: "Appliances", Type: "Mixers",
	},
}

func demoUsers() ([]*user.User, error) {
	admin, err := user.NewUser(AdminUserID, "Store Admin", "admin@kitchenatics.com", user.Contact{
		Phone: "+63 917 000 0000", Address: "1 Ayala Ave, Makati", ZipCode: "1226",
	})
	if err != nil {
		return nil, err
	}
	if err := admin.ChangeRole(shared.RoleAdmin); err != nil {
		return nil, err
	}

	customer, err := user.NewUser(CustomerUserID, "Juan Dela Cruz", "juan@example.com", user.Contact{
		Phone: "+63 917 123 4567", Address: "12 Rizal St, Quezon City", ZipCode: "1100",
	})
	if err != nil {
		return nil, err
	}
	return []*user.User{admin, customer}, nil
}

// Run inserts the demo data in one unit of work. It does nothing when the
// user table already has rows.
func Run(ctx context.Context, uow shared.UnitOfWork, catalogRepo catalog.Repository, users user.Repository) error {
	return uow.Execute(ctx, func(ctx context.Context) error {
		_, total, err := users.List(ctx, shared.NewPageRequest(1, 1))
		if err != nil {
			return err
		}
		if total > 0 {
			logger.FromContext(ctx).Debug("Seed skipped, store not empty", zap.Int64("users", total))
			return nil
		}

		for _, dto := range products {
			p, err := catalog.NewProduct(dto)
			if err != nil {
				return err
			}
			if err := catalogRepo.Save(ctx, p); err != nil {
				return err
			}
		}

		accounts, err := demoUsers()
		if err != nil {
			return err
		}
		for _, u := range accounts {
			if err := users.Save(ctx, u); err != nil {
				return err
			}
		}

		logger.FromContext(ctx).Info("Seeded demo data",
			zap.Int("products", len(products)),
			zap.Int("users", len(accounts)))
		return nil
	})
}
