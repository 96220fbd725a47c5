// Package types - Pay period and occurrence types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayPeriod is a fixed 7-day budgeting window. Start always falls on the
// configured anchor weekday at midnight UTC; End is Start plus six days,
// inclusive, so a period spans exactly seven calendar days.
type PayPeriod struct {
	// Start is the first day of the window
	Start time.Time `json:"start"`

	// End is the last day of the window (inclusive)
	End time.Time `json:"end"`
}

// Contains reports whether a calendar date falls inside the window.
func (p PayPeriod) Contains(date time.Time) bool {
	d := NormalizeDate(date)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Valid reports whether the window is well-formed.
func (p PayPeriod) Valid() bool {
	return !p.End.Before(p.Start)
}

// Occurrence is one concrete billing event of a subscription falling
// inside a specific pay period.
type Occurrence struct {
	// SubscriptionID links back to the source subscription
	SubscriptionID string `json:"subscription_id"`

	// Date is the calendar date the charge lands on
	Date time.Time `json:"date"`

	// Cost is the resolved per-occurrence charge, after applying any
	// scheduled override or variable-pricing average
	Cost decimal.Decimal `json:"cost"`
}
