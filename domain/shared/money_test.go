package shared

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmetic(t *testing.T) {
	price, err := MoneyFromString("0.10")
	require.NoError(t, err)

	total := Zero
	for i := 0; i < 3; i++ {
		total = total.Add(price)
	}
	assert.Equal(t, "0.30", total.String())
	assert.Equal(t, "0.70", price.Times(7).String())
	assert.Equal(t, "0.01", price.ApplyRate(decimal.RequireFromString("0.08")).String())
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{Total: MoneyFromFloat(270)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":270.00}`, string(data))

	var decoded struct {
		Total Money `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"total":"19.99"}`), &decoded))
	assert.Equal(t, "19.99", decoded.Total.String())
}

func TestPageRequestDefaults(t *testing.T) {
	assert.Equal(t, PageRequest{Page: 1, Limit: 10}, NewPageRequest(0, 0))
	assert.Equal(t, PageRequest{Page: 3, Limit: 100}, NewPageRequest(3, 500))

	p := NewPageRequest(2, 10)
	assert.Equal(t, 10, p.Offset())
	assert.Equal(t, 3, p.TotalPages(21))
	assert.Equal(t, 0, p.TotalPages(0))

	huge := NewPageRequest(math.MaxInt, MaxLimit)
	assert.Equal(t, math.MaxInt, huge.Offset())
	assert.Equal(t, math.MaxInt, NewPageRequest(1<<62+1, 10).Offset())
	assert.Equal(t, 0, PageRequest{}.Offset())
}

func TestPrincipal(t *testing.T) {
	anonymous := Principal{}
	assert.ErrorIs(t, anonymous.RequireUser(), ErrUnauthorized)

	customer := Principal{UserID: "u1", Role: RoleUser}
	assert.NoError(t, customer.RequireUser())
	err := customer.RequireAdmin()
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "Role (user) is not allowed to access this resource", err.Error())

	admin := Principal{UserID: "a1", Role: RoleAdmin}
	assert.NoError(t, admin.RequireAdmin())
}
