// Package schedule projects a subscription's billing occurrences into a
// pay period. All candidate dates derive from the subscription's anchor
// date by stepping whole cycles; the walks are bounded so projection
// terminates even for windows far from the anchor.
package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"budgetcast/core/quality"
	"budgetcast/core/types"
	"budgetcast/internal/errors"
)

// MaxWalkCycles bounds each directional walk from the anchor.
const MaxWalkCycles = 36

// cycleStep describes one billing cycle as either a day span or a
// calendar-month span. Month spans step by calendar months with
// end-of-month clamping rather than a fixed number of days.
type cycleStep struct {
	days   int
	months int
}

func stepFor(f types.Frequency) cycleStep {
	switch f {
	case types.FrequencyDaily:
		return cycleStep{days: 1}
	case types.FrequencyWeekly:
		return cycleStep{days: 7}
	case types.FrequencyBiweekly:
		return cycleStep{days: 14}
	case types.FrequencyMonthly:
		return cycleStep{months: 1}
	case types.FrequencyQuarterly:
		return cycleStep{months: 3}
	case types.FrequencySemiannual:
		return cycleStep{months: 6}
	case types.FrequencyYearly:
		return cycleStep{months: 12}
	}
	return cycleStep{months: 1}
}

// advance returns the anchor advanced by k cycles. Month-granularity
// cycles preserve the anchor's day-of-month and clamp to the target
// month's last day, and always step from the anchor itself so a Jan 31
// anchor yields Feb 29/28 and then Mar 31 rather than drifting.
func (s cycleStep) advance(anchor time.Time, k int) time.Time {
	if s.days > 0 {
		return anchor.AddDate(0, 0, k*s.days)
	}
	return addMonthsClamped(anchor, k*s.months)
}

// addMonthsClamped adds calendar months, clamping the day-of-month to
// the target month's length. time.AddDate would normalize Jan 31 + 1
// month into Mar 2/3; billing dates must land in the target month.
func addMonthsClamped(date time.Time, months int) time.Time {
	y, m, d := date.Date()
	firstOfTarget := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	ty, tm, _ := firstOfTarget.Date()

	if last := daysIn(ty, tm); d > last {
		d = last
	}
	return time.Date(ty, tm, d, 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in a month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// Project returns the sorted, deduplicated billing occurrences of one
// subscription inside one pay period, with per-occurrence cost already
// resolved. Projection ignores subscription status; filtering is the
// aggregator's concern. An inverted period is a contract violation.
func Project(sub *types.Subscription, p types.PayPeriod) ([]types.Occurrence, []quality.Warning, error) {
	if sub == nil {
		return nil, nil, errors.Contract("nil subscription")
	}
	if !p.Valid() {
		return nil, nil, errors.Contractf("period end %s precedes start %s",
			p.End.Format(dateKeyLayout), p.Start.Format(dateKeyLayout))
	}

	var warns []quality.Warning
	if sub.AnchorDate.IsZero() {
		warns = append(warns, quality.Newf(quality.CodeMissingAnchor, sub.ID, "anchor_date",
			"subscription has no anchor date; nothing to project"))
		return nil, warns, nil
	}

	freq, ok := types.ParseFrequency(string(sub.Frequency))
	if !ok {
		warns = append(warns, quality.Newf(quality.CodeUnknownFrequency, sub.ID, "frequency",
			"unknown frequency %q, projecting as monthly", string(sub.Frequency)))
	}

	anchor := types.NormalizeDate(sub.AnchorDate)
	step := stepFor(freq)
	set := newOccurrenceSet()

	// Backward walk: anchor and earlier, until we fall before the window.
	for k := 0; k >= -MaxWalkCycles; k-- {
		candidate := step.advance(anchor, k)
		if candidate.Before(p.Start) {
			break
		}
		if p.Contains(candidate) {
			occ, w := resolveOccurrence(sub, candidate)
			warns = append(warns, w...)
			set.add(occ)
		}
	}

	// Forward walk: mirror of the above, until we pass the window.
	for k := 1; k <= MaxWalkCycles; k++ {
		candidate := step.advance(anchor, k)
		if candidate.After(p.End) {
			break
		}
		if p.Contains(candidate) {
			occ, w := resolveOccurrence(sub, candidate)
			warns = append(warns, w...)
			set.add(occ)
		}
	}

	return set.sorted(), warns, nil
}

// resolveOccurrence resolves the charge for one occurrence date: an
// exact scheduled override wins, then the variable-pricing average,
// then the flat price. Negative amounts clamp to zero.
func resolveOccurrence(sub *types.Subscription, date time.Time) (types.Occurrence, []quality.Warning) {
	var warns []quality.Warning

	cost := sub.Price
	if change, ok := sub.VariablePricing.ChangeOn(date); ok {
		cost = change.Cost
	} else if sub.VariablePricing != nil && !sub.VariablePricing.AveragePrice.IsZero() {
		cost = sub.VariablePricing.AveragePrice
	}

	if cost.IsNegative() {
		warns = append(warns, quality.Newf(quality.CodeNegativePrice, sub.ID, "price",
			"negative cost %s on %s clamped to 0", cost, date.Format(dateKeyLayout)))
		cost = decimal.Zero
	}

	return types.Occurrence{
		SubscriptionID: sub.ID,
		Date:           date,
		Cost:           cost,
	}, warns
}
