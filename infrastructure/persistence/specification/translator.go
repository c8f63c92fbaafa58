// Package specification turns domain specifications into gorm scopes so the
// relational store filters in SQL what the memory store evaluates in process.
package specification

import (
	"strings"

	"storefront/domain/order"
	"storefront/domain/shared"

	"gorm.io/gorm"
)

// Scope gorm query modifier
type Scope = func(*gorm.DB) *gorm.DB

// OrderTranslator translates order specifications against the orders table
type OrderTranslator struct{}

func NewOrderTranslator() *OrderTranslator {
	return &OrderTranslator{}
}

// Translate returns nil for a nil spec. ok is false when some part of the
// spec has no SQL form; callers must not run a partially filtered query.
func (t *OrderTranslator) Translate(spec shared.Specification[*order.Order]) (scope Scope, ok bool) {
	if spec == nil {
		return nil, true
	}

	switch s := spec.(type) {
	case shared.AndSpecification[*order.Order]:
		left, okLeft := t.Translate(s.Left)
		right, okRight := t.Translate(s.Right)
		if !okLeft || !okRight {
			return nil, false
		}
		return func(db *gorm.DB) *gorm.DB {
			if left != nil {
				db = left(db)
			}
			if right != nil {
				db = right(db)
			}
			return db
		}, true

	case shared.OrSpecification[*order.Order]:
		left, okLeft := t.Translate(s.Left)
		right, okRight := t.Translate(s.Right)
		if !okLeft || !okRight || left == nil || right == nil {
			return nil, false
		}
		return func(db *gorm.DB) *gorm.DB {
			session := db.Session(&gorm.Session{NewDB: true})
			return db.Where(left(session).Or(right(session)))
		}, true

	case shared.NotSpecification[*order.Order]:
		inner, okInner := t.Translate(s.Spec)
		if !okInner || inner == nil {
			return nil, false
		}
		return func(db *gorm.DB) *gorm.DB {
			return db.Not(inner(db.Session(&gorm.Session{NewDB: true})))
		}, true

	case order.ByUserIDSpecification:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("user_id = ?", s.UserID)
		}, true

	case order.ByStatusSpecification:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", string(s.Status))
		}, true

	case order.SearchTextSpecification:
		pattern := "%" + escapeLike(strings.ToLower(s.Text)) + "%"
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ?",
				pattern, pattern, pattern)
		}, true
	}

	return nil, false
}

// escapeLike neutralizes LIKE wildcards typed by the user
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
