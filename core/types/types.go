// Package types - Shared domain types for billing projection and budgeting
package types

import "time"

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Frequency is the closed set of billing cycles a subscription can recur on.
type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyBiweekly   Frequency = "biweekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiannual Frequency = "semiannual"
	FrequencyYearly     Frequency = "yearly"
)

// String returns the string representation
func (f Frequency) String() string {
	return string(f)
}

// ParseFrequency maps a raw string onto the closed enum.
// The boolean reports whether the input was recognized; callers that
// receive false fall back to monthly and emit a data-quality warning.
func ParseFrequency(raw string) (Frequency, bool) {
	switch Frequency(raw) {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly,
		FrequencyQuarterly, FrequencySemiannual, FrequencyYearly:
		return Frequency(raw), true
	}
	return FrequencyMonthly, false
}

// Status is the lifecycle state of a subscription
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusWatchlist Status = "watchlist"
)

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// BalanceHealth classifies a budget category's balance against its buffer
type BalanceHealth string

const (
	// HealthHealthy means the balance meets or exceeds the minimum buffer
	HealthHealthy BalanceHealth = "healthy"

	// HealthWarning means the balance is positive but below the buffer
	HealthWarning BalanceHealth = "warning"

	// HealthCritical means the balance is zero or negative
	HealthCritical BalanceHealth = "critical"
)

// Date builds a calendar date at midnight UTC.
// All engine arithmetic operates on calendar dates, never instants.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NormalizeDate truncates a time to its calendar date at midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two times fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
