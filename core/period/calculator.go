// Package period maps calendar dates onto 7-day pay-period windows.
// A pay period always starts on the configured anchor weekday and spans
// exactly seven calendar days, end inclusive.
package period

import (
	"time"

	"budgetcast/core/types"
	"budgetcast/internal/errors"
)

// DefaultAnchor is the weekday pay periods start on unless configured.
const DefaultAnchor = time.Friday

// PeriodDays is the length of a pay period in calendar days.
const PeriodDays = 7

// Calculator resolves pay-period windows for a fixed anchor weekday.
// The zero value anchors on Sunday; use NewCalculator for the default.
type Calculator struct {
	// Anchor is the weekday every period starts on
	Anchor time.Weekday
}

// NewCalculator creates a calculator with the default anchor weekday.
func NewCalculator() Calculator {
	return Calculator{Anchor: DefaultAnchor}
}

// PeriodContaining returns the pay period that contains the given date.
// The start is the most recent anchor weekday on or before the date; if
// the date itself falls on the anchor weekday it starts the period.
func (c Calculator) PeriodContaining(date time.Time) types.PayPeriod {
	d := types.NormalizeDate(date)
	back := (int(d.Weekday()) - int(c.Anchor) + PeriodDays) % PeriodDays
	start := d.AddDate(0, 0, -back)
	return types.PayPeriod{
		Start: start,
		End:   start.AddDate(0, 0, PeriodDays-1),
	}
}

// PeriodsFrom returns count consecutive non-overlapping periods, the
// first being PeriodContaining(date). A negative count is a contract
// violation.
func (c Calculator) PeriodsFrom(date time.Time, count int) ([]types.PayPeriod, error) {
	if count < 0 {
		return nil, errors.Contractf("requested %d periods; count must be non-negative", count)
	}

	periods := make([]types.PayPeriod, 0, count)
	current := c.PeriodContaining(date)
	for i := 0; i < count; i++ {
		periods = append(periods, current)
		next := current.Start.AddDate(0, 0, PeriodDays)
		current = types.PayPeriod{
			Start: next,
			End:   next.AddDate(0, 0, PeriodDays-1),
		}
	}
	return periods, nil
}
