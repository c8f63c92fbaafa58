package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = shared.Principal{UserID: "alice", Role: shared.RoleUser}

type fixture struct {
	svc      *Service
	products *memory.ProductRepository
	carts    *memory.CartRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	carts := memory.NewCartRepository(store)

	for _, dto := range []catalog.ProductDTO{
		{ID: "pan", Name: "Frying Pan", Price: shared.MoneyFromFloat(100), Stock: 5, Brand: "Tefal", Category: "Cookware"},
		{ID: "board", Name: "Cutting Board", Price: shared.MoneyFromFloat(50), Stock: 5},
	} {
		p, err := catalog.NewProduct(dto)
		require.NoError(t, err)
		require.NoError(t, products.Save(context.Background(), p))
	}

	return &fixture{
		svc:      NewService(carts, products, memory.NewUnitOfWork(store)),
		products: products,
		carts:    carts,
	}
}

func qty(n int) *int { return &n }

func TestAddItemMergesQuantities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, alice, AddItemRequest{ProductID: "pan", Quantity: qty(2)})
	require.NoError(t, err)
	resp, err := f.svc.AddItem(ctx, alice, AddItemRequest{ProductID: "pan", Quantity: qty(3)})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, "500.00", resp.TotalPrice.String())
	require.NotNil(t, resp.Items[0].Product)
	assert.Equal(t, "Frying Pan", resp.Items[0].Product.Name)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.AddItem(context.Background(), alice, AddItemRequest{ProductID: "board"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Items[0].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, alice, AddItemRequest{ProductID: "pan", Quantity: qty(0)})
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	_, err = f.svc.AddItem(ctx, alice, AddItemRequest{ProductID: "ghost"})
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	_, err = f.svc.AddItem(ctx, shared.Principal{}, AddItemRequest{ProductID: "pan"})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)

	_, err = f.carts.FindByUserID(ctx, alice.UserID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound, "failed adds must not create a cart")
}

func TestGetCartWithoutCartIsEmpty(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetCart(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.NotNil(t, resp.Items)
	assert.True(t, resp.TotalPrice.IsZero())
}

func TestCartKeepsSnapshotPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, alice, AddItemRequest{ProductID: "pan"})
	require.NoError(t, err)

	p, err := f.products.FindByID(ctx, "pan")
	require.NoError(t, err)
	require.NoError(t, p.ChangePrice(shared.MoneyFromFloat(999)))
	require.NoError(t, f.products.Save(ctx, p))

	resp, err := f.svc.GetCart(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "100.00", resp.Items[0].Price.String())
	assert.Equal(t, "999.00", resp.Items[0].Product.Price.String(), "live details are attached separately")
}

func TestUpdateAndRemoveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.AddItem(ctx, alice, AddItemRequest{ProductID: "pan"})
	require.NoError(t, err)
	itemID := resp.Items[0].ID

	_, err = f.svc.UpdateItem(ctx, alice, itemID, UpdateItemRequest{Quantity: 0})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	resp, err = f.svc.UpdateItem(ctx, alice, itemID, UpdateItemRequest{Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Items[0].Quantity)

	_, err = f.svc.UpdateItem(ctx, alice, "nope", UpdateItemRequest{Quantity: 1})
	assert.ErrorIs(t, err, cart.ErrCartItemNotFound)

	resp, err = f.svc.RemoveItem(ctx, alice, itemID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	_, err = f.svc.RemoveItem(ctx, alice, itemID)
	assert.NoError(t, err, "removing an absent item is not an error")

	bob := shared.Principal{UserID: "bob", Role: shared.RoleUser}
	_, err = f.svc.UpdateItem(ctx, bob, itemID, UpdateItemRequest{Quantity: 1})
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
	_, err = f.svc.RemoveItem(ctx, bob, itemID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestClearCartIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, alice, AddItemRequest{ProductID: "pan"})
	require.NoError(t, err)

	require.NoError(t, f.svc.ClearCart(ctx, alice))
	require.NoError(t, f.svc.ClearCart(ctx, alice))

	resp, err := f.svc.GetCart(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestConcurrentFirstAddsSumQuantities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.AddItem(ctx, alice, AddItemRequest{ProductID: "pan", Quantity: qty(1)})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	c, err := f.carts.FindByUserID(ctx, alice.UserID)
	require.NoError(t, err)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, 2, c.Items()[0].Quantity())
}

type brokenCatalog struct {
	catalog.Repository
}

func (brokenCatalog) FindByIDs(ctx context.Context, ids []string) ([]*catalog.Product, error) {
	return nil, errors.New("catalog unavailable")
}

func TestEnrichmentFailureReturnsRawCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.AddItem(ctx, alice, AddItemRequest{ProductID: "pan"})
	require.NoError(t, err)

	f.svc.products = brokenCatalog{Repository: f.products}
	resp, err := f.svc.GetCart(ctx, alice)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Nil(t, resp.Items[0].Product)
	assert.Equal(t, "Frying Pan", resp.Items[0].Name)
}
