package cart

import (
	"errors"
	"testing"

	"storefront/domain/catalog"
	"storefront/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(t *testing.T, id, price string) *catalog.Product {
	t.Helper()
	m, err := shared.MoneyFromString(price)
	require.NoError(t, err)
	p, err := catalog.NewProduct(catalog.ProductDTO{
		ID:       id,
		Name:     "Product " + id,
		Price:    m,
		Stock:    10,
		Brand:    "Acme",
		Category: "Cookware",
		Images:   []catalog.Image{{PublicID: "img-" + id, URL: "https://img/" + id}},
	})
	require.NoError(t, err)
	return p
}

func TestAddItemMergesSameProduct(t *testing.T) {
	c, err := New("user-1")
	require.NoError(t, err)
	p := product(t, "a", "100")

	_, err = c.AddItem(p, 2)
	require.NoError(t, err)
	_, err = c.AddItem(p, 3)
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity())
	assert.Equal(t, "500.00", c.TotalPrice().String())
	assert.Equal(t, 5, c.TotalItems())
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	c, err := New("user-1")
	require.NoError(t, err)
	p := product(t, "a", "100")

	_, err = c.AddItem(p, 1)
	require.NoError(t, err)
	require.NoError(t, p.ChangePrice(shared.MoneyFromFloat(999)))

	item := c.Items()[0]
	assert.Equal(t, "100.00", item.Price().String())
	assert.Equal(t, "Acme", item.Brand())
	assert.Equal(t, "https://img/a", item.Image())
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	c, err := New("user-1")
	require.NoError(t, err)

	_, err = c.AddItem(product(t, "a", "1"), 0)
	assert.True(t, errors.Is(err, ErrInvalidQuantity))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.True(t, c.IsEmpty())
}

func TestUpdateItemQuantity(t *testing.T) {
	c, err := New("user-1")
	require.NoError(t, err)
	item, err := c.AddItem(product(t, "a", "10"), 1)
	require.NoError(t, err)

	require.NoError(t, c.UpdateItemQuantity(item.ID(), 4))
	assert.Equal(t, 4, c.Items()[0].Quantity())

	err = c.UpdateItemQuantity(item.ID(), 0)
	assert.True(t, errors.Is(err, ErrInvalidQuantity))

	err = c.UpdateItemQuantity("missing", 2)
	assert.True(t, errors.Is(err, ErrCartItemNotFound))
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestRemoveItem(t *testing.T) {
	c, err := New("user-1")
	require.NoError(t, err)
	a, err := c.AddItem(product(t, "a", "10"), 1)
	require.NoError(t, err)
	_, err = c.AddItem(product(t, "b", "20"), 1)
	require.NoError(t, err)

	c.RemoveItem(a.ID())
	c.RemoveItem("already-gone")

	require.Len(t, c.Items(), 1)
	assert.Equal(t, "b", c.Items()[0].ProductID())
}

func TestRebuildRoundTripKeepsSnapshots(t *testing.T) {
	c, err := New("user-1")
	require.NoError(t, err)
	_, err = c.AddItem(product(t, "a", "12.50"), 2)
	require.NoError(t, err)

	rebuilt := RebuildFromDTO(c.ToDTO())
	assert.False(t, rebuilt.IsNew())
	assert.Equal(t, c.ID(), rebuilt.ID())
	assert.True(t, rebuilt.TotalPrice().Equals(c.TotalPrice()))
}
