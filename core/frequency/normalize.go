// Package frequency converts per-cycle prices into weekly, monthly and
// yearly equivalents using fixed calendar conventions: 4.33 weeks per
// month, 13/26/52 weeks per quarter/half-year/year, 12 months per year
// and 365.25 days per year.
package frequency

import (
	"github.com/shopspring/decimal"

	"budgetcast/core/quality"
	"budgetcast/core/types"
)

var (
	weeksPerMonth    = decimal.RequireFromString("4.33")
	weeksPerQuarter  = decimal.NewFromInt(13)
	weeksPerHalfYear = decimal.NewFromInt(26)
	weeksPerYear     = decimal.NewFromInt(52)
	daysPerWeek      = decimal.NewFromInt(7)
	daysPerYear      = decimal.RequireFromString("365.25")
	monthsPerYear    = decimal.NewFromInt(12)
	daysPerMonth     = daysPerYear.Div(monthsPerYear) // 30.4375
	two              = decimal.NewFromInt(2)
	three            = decimal.NewFromInt(3)
	four             = decimal.NewFromInt(4)
	six              = decimal.NewFromInt(6)
)

// normalizePrice clamps malformed prices to zero so NaN/negative values
// never propagate into downstream arithmetic.
func normalizePrice(price decimal.Decimal, subjectID string, warns []quality.Warning) (decimal.Decimal, []quality.Warning) {
	if price.IsNegative() {
		warns = append(warns, quality.Newf(quality.CodeNegativePrice, subjectID, "price",
			"negative price %s clamped to 0", price))
		return decimal.Zero, warns
	}
	return price, warns
}

// normalizeFrequency resolves unknown frequencies to the documented
// monthly fallback and records the substitution.
func normalizeFrequency(f types.Frequency, subjectID string, warns []quality.Warning) (types.Frequency, []quality.Warning) {
	parsed, ok := types.ParseFrequency(string(f))
	if !ok {
		warns = append(warns, quality.Newf(quality.CodeUnknownFrequency, subjectID, "frequency",
			"unknown frequency %q, falling back to monthly", string(f)))
	}
	return parsed, warns
}

// ToWeekly converts a per-cycle price into its weekly equivalent.
func ToWeekly(price decimal.Decimal, f types.Frequency) (decimal.Decimal, []quality.Warning) {
	return convertWeekly(price, f, "")
}

// ToMonthly converts a per-cycle price into its monthly equivalent.
func ToMonthly(price decimal.Decimal, f types.Frequency) (decimal.Decimal, []quality.Warning) {
	return convertMonthly(price, f, "")
}

// ToYearly converts a per-cycle price into its yearly equivalent.
func ToYearly(price decimal.Decimal, f types.Frequency) (decimal.Decimal, []quality.Warning) {
	return convertYearly(price, f, "")
}

// Weekly returns a subscription's weekly-equivalent cost, using the
// variable-pricing average as the base when present.
func Weekly(sub *types.Subscription) (decimal.Decimal, []quality.Warning) {
	return convertWeekly(sub.BasePrice(), sub.Frequency, sub.ID)
}

// Monthly returns a subscription's monthly-equivalent cost.
func Monthly(sub *types.Subscription) (decimal.Decimal, []quality.Warning) {
	return convertMonthly(sub.BasePrice(), sub.Frequency, sub.ID)
}

// Yearly returns a subscription's yearly-equivalent cost.
func Yearly(sub *types.Subscription) (decimal.Decimal, []quality.Warning) {
	return convertYearly(sub.BasePrice(), sub.Frequency, sub.ID)
}

func convertWeekly(price decimal.Decimal, f types.Frequency, subjectID string) (decimal.Decimal, []quality.Warning) {
	var warns []quality.Warning
	price, warns = normalizePrice(price, subjectID, warns)
	freq, warns := normalizeFrequency(f, subjectID, warns)

	switch freq {
	case types.FrequencyDaily:
		return price.Mul(daysPerWeek), warns
	case types.FrequencyWeekly:
		return price, warns
	case types.FrequencyBiweekly:
		return price.Div(two), warns
	case types.FrequencyMonthly:
		return price.Div(weeksPerMonth), warns
	case types.FrequencyQuarterly:
		return price.Div(weeksPerQuarter), warns
	case types.FrequencySemiannual:
		return price.Div(weeksPerHalfYear), warns
	case types.FrequencyYearly:
		return price.Div(weeksPerYear), warns
	}
	return price.Div(weeksPerMonth), warns
}

func convertMonthly(price decimal.Decimal, f types.Frequency, subjectID string) (decimal.Decimal, []quality.Warning) {
	var warns []quality.Warning
	price, warns = normalizePrice(price, subjectID, warns)
	freq, warns := normalizeFrequency(f, subjectID, warns)

	switch freq {
	case types.FrequencyDaily:
		return price.Mul(daysPerMonth), warns
	case types.FrequencyWeekly:
		return price.Mul(weeksPerMonth), warns
	case types.FrequencyBiweekly:
		return price.Mul(weeksPerMonth).Div(two), warns
	case types.FrequencyMonthly:
		return price, warns
	case types.FrequencyQuarterly:
		return price.Div(three), warns
	case types.FrequencySemiannual:
		return price.Div(six), warns
	case types.FrequencyYearly:
		return price.Div(monthsPerYear), warns
	}
	return price, warns
}

func convertYearly(price decimal.Decimal, f types.Frequency, subjectID string) (decimal.Decimal, []quality.Warning) {
	var warns []quality.Warning
	price, warns = normalizePrice(price, subjectID, warns)
	freq, warns := normalizeFrequency(f, subjectID, warns)

	switch freq {
	case types.FrequencyDaily:
		return price.Mul(daysPerYear), warns
	case types.FrequencyWeekly:
		return price.Mul(weeksPerYear), warns
	case types.FrequencyBiweekly:
		return price.Mul(weeksPerHalfYear), warns
	case types.FrequencyMonthly:
		return price.Mul(monthsPerYear), warns
	case types.FrequencyQuarterly:
		return price.Mul(four), warns
	case types.FrequencySemiannual:
		return price.Mul(two), warns
	case types.FrequencyYearly:
		return price, warns
	}
	return price.Mul(monthsPerYear), warns
}
