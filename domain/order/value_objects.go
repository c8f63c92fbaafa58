package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"storefront/domain/shared"

	"github.com/shopspring/decimal"
)

// Status order lifecycle state. Any known value may be assigned by an admin;
// only membership in the set is validated.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses in lifecycle order
var Statuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

func (s Status) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

// ParseStatus fails with ErrInvalidStatus for unknown values
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.IsValid() {
		return "", NewInvalidStatusError(value)
	}
	return s, nil
}

// TaxRate fixed sales tax applied to the subtotal
var TaxRate = decimal.RequireFromString("0.08")

// Totals subtotal, tax and total; Total == Subtotal + Tax
type Totals struct {
	Subtotal shared.Money
	Tax      shared.Money
	Total    shared.Money
}

// ComputeTotals derives tax (rounded to cents) and total from a subtotal
func ComputeTotals(subtotal shared.Money) Totals {
	tax := subtotal.ApplyRate(TaxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// NumberGenerator produces candidate order numbers. Uniqueness is enforced by
// the store; callers retry with a fresh number on collision.
type NumberGenerator interface {
	Next() string
}

// TimeNumberGenerator formats ORD-<epochMillis>-<3 random digits>
type TimeNumberGenerator struct {
	Now func() time.Time
}

func (g TimeNumberGenerator) Next() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	suffix, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		suffix = big.NewInt(now().UnixNano() % 1000)
	}
	return fmt.Sprintf("ORD-%d-%03d", now().UnixMilli(), suffix.Int64())
}
