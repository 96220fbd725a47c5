// Package types - Subscription snapshot types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription is an immutable snapshot of one recurring bill.
// The engine never mutates or stores these; callers supply fresh
// snapshots on every call.
type Subscription struct {
	// ID uniquely identifies the subscription
	ID string `json:"id"`

	// Name is a human-readable label (e.g., "Netflix")
	Name string `json:"name"`

	// Price is the per-occurrence charge. Non-negative; malformed
	// values are clamped to zero by the engine.
	Price decimal.Decimal `json:"price"`

	// Frequency is the billing cycle
	Frequency Frequency `json:"frequency"`

	// AnchorDate is the canonical occurrence date from which every
	// other occurrence is derived by stepping whole cycles. Any past
	// or future date can seed the search.
	AnchorDate time.Time `json:"anchor_date"`

	// Status is the lifecycle state
	Status Status `json:"status"`

	// Category is a free-text budget category name
	Category string `json:"category,omitempty"`

	// BudgetCategoryID references a BudgetCategory by ID. Takes
	// precedence over Category when both are set.
	BudgetCategoryID string `json:"budget_category_id,omitempty"`

	// VariablePricing is the optional per-occurrence cost schedule
	VariablePricing *VariablePricing `json:"variable_pricing,omitempty"`
}

// VariablePricing describes a subscription whose charge differs per
// occurrence, either via an average or explicit dated overrides.
type VariablePricing struct {
	// AveragePrice replaces Subscription.Price as the base amount for
	// both projection and frequency normalization. Zero means "no
	// average recorded" and falls back to the flat price; a genuinely
	// free subscription is expressed with Price = 0 and no average.
	AveragePrice decimal.Decimal `json:"average_price"`

	// UpcomingChanges lists scheduled per-date overrides, ordered by date
	UpcomingChanges []PriceChange `json:"upcoming_changes,omitempty"`
}

// PriceChange is one scheduled cost override
type PriceChange struct {
	// Date the override applies to (calendar date, midnight UTC)
	Date time.Time `json:"date"`

	// Cost charged on that date
	Cost decimal.Decimal `json:"cost"`

	// Description explains the change (e.g., "annual price increase")
	Description string `json:"description,omitempty"`
}

// ChangeOn returns the scheduled override for an exact calendar date, if any.
func (v *VariablePricing) ChangeOn(date time.Time) (PriceChange, bool) {
	if v == nil {
		return PriceChange{}, false
	}
	for _, ch := range v.UpcomingChanges {
		if SameDate(ch.Date, date) {
			return ch, true
		}
	}
	return PriceChange{}, false
}

// BasePrice returns the amount used as the subscription's nominal charge:
// the variable-pricing average when present, the flat price otherwise.
// A zero average counts as absent (see VariablePricing.AveragePrice).
func (s *Subscription) BasePrice() decimal.Decimal {
	if s.VariablePricing != nil && !s.VariablePricing.AveragePrice.IsZero() {
		return s.VariablePricing.AveragePrice
	}
	return s.Price
}
