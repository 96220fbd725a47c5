// Package types - Budget category and allocation result types
package types

import "github.com/shopspring/decimal"

// BudgetCategory is an immutable snapshot of one funding envelope.
// CurrentBalance is mutated only by the caller's persistence layer;
// the allocator reads it and never writes it back.
type BudgetCategory struct {
	// ID uniquely identifies the category
	ID string `json:"id"`

	// Name is a human-readable label, matched case-insensitively
	// against Subscription.Category
	Name string `json:"name"`

	// WeeklyAllocation is the target funding per pay period
	WeeklyAllocation decimal.Decimal `json:"weekly_allocation"`

	// CurrentBalance is the funds currently set aside
	CurrentBalance decimal.Decimal `json:"current_balance"`

	// Priority ranks funding urgency, 1-10, higher is more urgent.
	// Values outside that range normalize to 0 with a warning.
	Priority int `json:"priority"`

	// MinimumBuffer is the balance floor below which health degrades
	MinimumBuffer decimal.Decimal `json:"minimum_buffer"`

	// AutoFund marks the category for automatic top-up by the caller;
	// the allocator only annotates recommendations with it
	AutoFund bool `json:"auto_fund"`
}

// CategoryAllocation is the allocator's verdict for one category.
type CategoryAllocation struct {
	// CategoryID links back to the source category
	CategoryID string `json:"category_id"`

	// CategoryName is carried for display
	CategoryName string `json:"category_name"`

	// TotalDue is the aggregated cost of this category's occurrences
	// inside the pay period
	TotalDue decimal.Decimal `json:"total_due"`

	// RequiredFunding is max(0, TotalDue - CurrentBalance)
	RequiredFunding decimal.Decimal `json:"required_funding"`

	// BalanceHealth classifies CurrentBalance against MinimumBuffer
	BalanceHealth BalanceHealth `json:"balance_health"`

	// UtilizationRate is weekly burn over weekly allocation, as a
	// percentage; 0 when the allocation is 0
	UtilizationRate decimal.Decimal `json:"utilization_rate"`

	// ProjectedWeeks is how many more periods the balance lasts at the
	// current burn rate; 0 when there is no burn
	ProjectedWeeks int `json:"projected_weeks"`
}

// FundingRecommendation suggests topping a category up.
type FundingRecommendation struct {
	// CategoryID identifies the category to fund
	CategoryID string `json:"category_id"`

	// CategoryName is carried for display
	CategoryName string `json:"category_name"`

	// Amount is the suggested funding (equals RequiredFunding)
	Amount decimal.Decimal `json:"amount"`

	// Priority is the category's funding priority
	Priority int `json:"priority"`

	// AutoFund mirrors the category flag so callers can apply
	// auto-funded recommendations without a second lookup
	AutoFund bool `json:"auto_fund"`

	// Reason summarizes why funding is needed
	Reason string `json:"reason"`
}

// AllocationResult is the full output of one allocation pass.
type AllocationResult struct {
	// Categories holds one allocation per input category, in input order
	Categories []CategoryAllocation `json:"categories"`

	// TotalWeeklyNeed is the sum of TotalDue across categories
	TotalWeeklyNeed decimal.Decimal `json:"total_weekly_need"`

	// TotalCurrentBalance is the sum of CurrentBalance across categories
	TotalCurrentBalance decimal.Decimal `json:"total_current_balance"`

	// AdditionalFundingRequired is max(0, TotalWeeklyNeed - TotalCurrentBalance)
	AdditionalFundingRequired decimal.Decimal `json:"additional_funding_required"`

	// FundingRecommendations lists underfunded categories, highest
	// priority first; equal priorities order by ascending category ID
	FundingRecommendations []FundingRecommendation `json:"funding_recommendations"`
}
