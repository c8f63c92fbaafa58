package order

import (
	"context"
	"strings"

	"storefront/domain/shared"
)

// ByUserIDSpecification orders owned by UserID
type ByUserIDSpecification struct {
	UserID string
}

func (spec ByUserIDSpecification) IsSatisfiedBy(ctx context.Context, entity *Order) bool {
	return entity.UserID() == spec.UserID
}

// ByStatusSpecification orders currently in Status
type ByStatusSpecification struct {
	Status Status
}

func (spec ByStatusSpecification) IsSatisfiedBy(ctx context.Context, entity *Order) bool {
	return entity.Status() == spec.Status
}

// SearchTextSpecification case-insensitive substring match on order number,
// customer name or customer email
type SearchTextSpecification struct {
	Text string
}

func (spec SearchTextSpecification) IsSatisfiedBy(ctx context.Context, entity *Order) bool {
	needle := strings.ToLower(spec.Text)
	customer := entity.Customer()
	for _, haystack := range []string{entity.OrderNumber(), customer.Name, customer.Email} {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

func NewByUserIDSpecification(userID string) shared.Specification[*Order] {
	return ByUserIDSpecification{UserID: userID}
}

func NewByStatusSpecification(status Status) shared.Specification[*Order] {
	return ByStatusSpecification{Status: status}
}

// NewSearchTextSpecification returns nil for blank text
func NewSearchTextSpecification(text string) shared.Specification[*Order] {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return SearchTextSpecification{Text: text}
}
