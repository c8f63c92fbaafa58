/*
Package cart orchestrates the shopping cart use cases.

Every mutation runs inside a unit of work so that two requests of the same
user are applied one after the other instead of overwriting each other.
Responses are built in two tiers: the stored cart is always returned, and
live product details are attached on a best-effort basis.
*/
package cart

import (
	"context"
	"errors"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/shared"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

type Service struct {
	carts    cart.Repository
	products catalog.Repository
	uow      shared.UnitOfWork
}

func NewService(carts cart.Repository, products catalog.Repository, uow shared.UnitOfWork) *Service {
	return &Service{carts: carts, products: products, uow: uow}
}

// AddItem merges quantity into the line for the product or appends a snapshot line,
// creating the cart on first use.
func (s *Service) AddItem(ctx context.Context, principal shared.Principal, req AddItemRequest) (*CartResponse, error) {
	if err := principal.RequireUser(); err != nil {
		return nil, err
	}
	if req.ProductID == "" {
		return nil, shared.NewValidationError("cart", "productId", "Product ID is required")
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		return nil, cart.NewInvalidQuantityError(quantity)
	}

	var c *cart.Cart
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		product, err := s.products.FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		c, err = s.loadOrCreate(ctx, principal.UserID)
		if err != nil {
			return err
		}
		if _, err := c.AddItem(product, quantity); err != nil {
			return err
		}
		return s.carts.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Item added to cart",
		zap.String("user_id", principal.UserID),
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", quantity))
	return s.present(ctx, principal.UserID, c), nil
}

// GetCart never fails for a missing cart; it returns an empty one
func (s *Service) GetCart(ctx context.Context, principal shared.Principal) (*CartResponse, error) {
	if err := principal.RequireUser(); err != nil {
		return nil, err
	}
	c, err := s.carts.FindByUserID(ctx, principal.UserID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return emptyCart(principal.UserID), nil
	}
	if err != nil {
		return nil, err
	}
	return s.present(ctx, principal.UserID, c), nil
}

func (s *Service) UpdateItem(ctx context.Context, principal shared.Principal, itemID string, req UpdateItemRequest) (*CartResponse, error) {
	if err := principal.RequireUser(); err != nil {
		return nil, err
	}
	if req.Quantity < 1 {
		return nil, cart.NewInvalidQuantityError(req.Quantity)
	}

	var c *cart.Cart
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.carts.FindByUserID(ctx, principal.UserID)
		if err != nil {
			return err
		}
		if err := c.UpdateItemQuantity(itemID, req.Quantity); err != nil {
			return err
		}
		return s.carts.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return s.present(ctx, principal.UserID, c), nil
}

// RemoveItem fails only when the user has no cart
func (s *Service) RemoveItem(ctx context.Context, principal shared.Principal, itemID string) (*CartResponse, error) {
	if err := principal.RequireUser(); err != nil {
		return nil, err
	}

	var c *cart.Cart
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.carts.FindByUserID(ctx, principal.UserID)
		if err != nil {
			return err
		}
		c.RemoveItem(itemID)
		return s.carts.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return s.present(ctx, principal.UserID, c), nil
}

// ClearCart deletes the cart; clearing an absent cart succeeds
func (s *Service) ClearCart(ctx context.Context, principal shared.Principal) error {
	if err := principal.RequireUser(); err != nil {
		return err
	}
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.carts.DeleteByUserID(ctx, principal.UserID)
	})
}

func (s *Service) loadOrCreate(ctx context.Context, userID string) (*cart.Cart, error) {
	c, err := s.carts.FindByUserID(ctx, userID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return cart.New(userID)
	}
	return c, err
}

// present converts the stored cart, then attaches live product details.
// Enrichment failures are logged and the raw cart is returned.
func (s *Service) present(ctx context.Context, userID string, c *cart.Cart) *CartResponse {
	resp := toCartResponse(userID, c)
	if len(resp.Items) == 0 {
		return resp
	}

	products, err := s.products.FindByIDs(ctx, c.ProductIDs())
	if err != nil {
		logger.FromContext(ctx).Warn("Cart enrichment failed, returning stored snapshot",
			zap.String("user_id", userID),
			zap.Error(err))
		return resp
	}
	attachProducts(resp, products)
	return resp
}
