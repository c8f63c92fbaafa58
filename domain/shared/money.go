package shared

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// moneyScale number of fractional digits kept for stored amounts
const moneyScale = 2

// Money is a fixed-point amount in the store currency
type Money struct {
	amount decimal.Decimal
}

// Zero money value
var Zero = Money{amount: decimal.Zero}

// NewMoney wraps a decimal amount
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// MoneyFromFloat converts a float amount, rounding to cents
func MoneyFromFloat(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount).Round(moneyScale)}
}

// MoneyFromString parses a decimal literal such as "19.99"
func MoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Zero, err
	}
	return Money{amount: d}, nil
}

// Decimal exposes the underlying amount
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 lossy conversion for presentation
func (m Money) Float64() float64 {
	return m.amount.InexactFloat64()
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times multiplies by a quantity
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// ApplyRate multiplies by rate and rounds half away from zero to cents
func (m Money) ApplyRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Round(moneyScale)}
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders with two decimals, e.g. "270.00"
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

// MarshalJSON writes a JSON number
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.StringFixed(moneyScale)), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	m.amount = d
	return nil
}
