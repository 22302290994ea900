// Package specification converts domain specifications to GORM query
// scopes. Framework knowledge stays here; domain specifications only know
// how to evaluate themselves in memory.
package specification

import (
	"commerce/domain/order"
	"commerce/domain/shared"

	"gorm.io/gorm"
)

// OrderTranslator converts order specifications to GORM scopes.
type OrderTranslator struct{}

func NewOrderTranslator() *OrderTranslator {
	return &OrderTranslator{}
}

// Translate returns a scope for the specification, or nil when the type is
// not translatable (callers then fall back to in-memory filtering).
func (t *OrderTranslator) Translate(spec shared.Specification[*order.Order]) func(*gorm.DB) *gorm.DB {
	if spec == nil {
		return nil
	}

	switch s := spec.(type) {
	case shared.AndSpecification[*order.Order]:
		return t.translateAnd(s)
	case shared.NotSpecification[*order.Order]:
		// NOT needs full predicate negation, which GORM scopes cannot
		// express generically.
		return nil
	case shared.OrSpecification[*order.Order]:
		// OR of scopes cannot be composed through GORM scopes.
		return nil
	}

	return t.translateConcrete(spec)
}

func (t *OrderTranslator) translateAnd(spec shared.AndSpecification[*order.Order]) func(*gorm.DB) *gorm.DB {
	leftQuery := t.Translate(spec.Left)
	rightQuery := t.Translate(spec.Right)
	if leftQuery == nil || rightQuery == nil {
		return nil
	}
	return func(db *gorm.DB) *gorm.DB {
		return rightQuery(leftQuery(db))
	}
}

func (t *OrderTranslator) translateConcrete(spec shared.Specification[*order.Order]) func(*gorm.DB) *gorm.DB {
	switch s := spec.(type) {
	case order.ByUserIDSpecification:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("user_id = ?", s.UserID)
		}
	case order.ByStatusSpecification:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", string(s.Status))
		}
	case order.ByDateRangeSpecification:
		return func(db *gorm.DB) *gorm.DB {
			if !s.Start.IsZero() {
				db = db.Where("created_at >= ?", s.Start)
			}
			if !s.End.IsZero() {
				db = db.Where("created_at <= ?", s.End)
			}
			return db
		}
	}

	return nil
}
