// Package allocate turns a period summary and a set of budget categories
// into funding requirements, balance health and ranked recommendations.
// The allocator is a pure reporting pass: it never mutates balances, and
// malformed category data normalizes to safe defaults instead of failing.
package allocate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"budgetcast/core/aggregate"
	"budgetcast/core/quality"
	"budgetcast/core/types"
	"budgetcast/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Result pairs the allocation output with the data-quality warnings
// collected while normalizing category inputs.
type Result struct {
	Allocation types.AllocationResult
	Warnings   []quality.Warning
}

// Allocate computes per-category funding requirements and period-level
// totals from an aggregated summary. A nil category collection or nil
// summary is a contract violation.
//
// Recommendations rank by priority descending; between equal priorities
// the category with the smaller ID comes first, which keeps the ranking
// stable across runs regardless of input order.
func Allocate(categories []*types.BudgetCategory, summary *aggregate.PeriodSummary) (*Result, error) {
	if categories == nil {
		return nil, errors.Contract("nil category collection")
	}
	if summary == nil {
		return nil, errors.Contract("nil period summary")
	}

	result := &Result{
		Allocation: types.AllocationResult{
			TotalWeeklyNeed:           decimal.Zero,
			TotalCurrentBalance:       decimal.Zero,
			AdditionalFundingRequired: decimal.Zero,
		},
	}

	var recs []types.FundingRecommendation

	for _, cat := range categories {
		if cat == nil {
			continue
		}

		norm := normalizeCategory(cat, &result.Warnings)
		group := matchGroup(summary, cat)

		totalDue := group.TotalCost
		weeklyCost := group.WeeklyCost

		alloc := types.CategoryAllocation{
			CategoryID:      cat.ID,
			CategoryName:    cat.Name,
			TotalDue:        totalDue,
			RequiredFunding: decimal.Max(decimal.Zero, totalDue.Sub(cat.CurrentBalance)),
			BalanceHealth:   health(cat.CurrentBalance, cat.MinimumBuffer),
			UtilizationRate: utilization(weeklyCost, norm.weeklyAllocation),
			ProjectedWeeks:  projectedWeeks(cat.CurrentBalance, weeklyCost),
		}
		result.Allocation.Categories = append(result.Allocation.Categories, alloc)

		result.Allocation.TotalWeeklyNeed = result.Allocation.TotalWeeklyNeed.Add(totalDue)
		result.Allocation.TotalCurrentBalance = result.Allocation.TotalCurrentBalance.Add(cat.CurrentBalance)

		if alloc.RequiredFunding.IsPositive() {
			recs = append(recs, types.FundingRecommendation{
				CategoryID:   cat.ID,
				CategoryName: cat.Name,
				Amount:       alloc.RequiredFunding,
				Priority:     norm.priority,
				AutoFund:     cat.AutoFund,
				Reason: fmt.Sprintf("%s due this period exceeds balance %s by %s",
					totalDue, cat.CurrentBalance, alloc.RequiredFunding),
			})
		}
	}

	shortfall := result.Allocation.TotalWeeklyNeed.Sub(result.Allocation.TotalCurrentBalance)
	result.Allocation.AdditionalFundingRequired = decimal.Max(decimal.Zero, shortfall)

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority > recs[j].Priority
		}
		return recs[i].CategoryID < recs[j].CategoryID
	})
	result.Allocation.FundingRecommendations = recs

	return result, nil
}

// normalizedCategory carries the sanitized fields the calculations use.
type normalizedCategory struct {
	priority         int
	weeklyAllocation decimal.Decimal
}

func normalizeCategory(cat *types.BudgetCategory, warns *[]quality.Warning) normalizedCategory {
	norm := normalizedCategory{
		priority:         cat.Priority,
		weeklyAllocation: cat.WeeklyAllocation,
	}

	if cat.Priority < 1 || cat.Priority > 10 {
		*warns = append(*warns, quality.Newf(quality.CodeInvalidPriority, cat.ID, "priority",
			"priority %d outside 1-10, treating as 0", cat.Priority))
		norm.priority = 0
	}

	if cat.WeeklyAllocation.IsNegative() {
		*warns = append(*warns, quality.Newf(quality.CodeNegativeAllocation, cat.ID, "weekly_allocation",
			"negative allocation %s treated as 0", cat.WeeklyAllocation))
		norm.weeklyAllocation = decimal.Zero
	}

	return norm
}

// matchGroup combines the summary groups funded by a category.
// Subscriptions reference a category either by ID or by free-text name,
// and aggregation keys those separately; both groups fund the same
// envelope, so their costs sum.
func matchGroup(summary *aggregate.PeriodSummary, cat *types.BudgetCategory) aggregate.CategoryGroup {
	keys := []string{cat.ID}
	if nameKey := strings.ToLower(strings.TrimSpace(cat.Name)); nameKey != "" && nameKey != cat.ID {
		keys = append(keys, nameKey)
	}

	combined := aggregate.CategoryGroup{TotalCost: decimal.Zero, WeeklyCost: decimal.Zero}
	for _, key := range keys {
		if g, ok := summary.Category(key); ok {
			combined.TotalCost = combined.TotalCost.Add(g.TotalCost)
			combined.WeeklyCost = combined.WeeklyCost.Add(g.WeeklyCost)
		}
	}
	return combined
}

func health(balance, buffer decimal.Decimal) types.BalanceHealth {
	switch {
	case balance.LessThanOrEqual(decimal.Zero):
		return types.HealthCritical
	case balance.LessThan(buffer):
		return types.HealthWarning
	default:
		return types.HealthHealthy
	}
}

// utilization is weekly burn over weekly allocation as a percentage.
// A zero allocation yields 0 rather than a division error.
func utilization(weeklyCost, weeklyAllocation decimal.Decimal) decimal.Decimal {
	if weeklyAllocation.IsZero() {
		return decimal.Zero
	}
	return weeklyCost.Div(weeklyAllocation).Mul(hundred)
}

// projectedWeeks is how many whole periods the balance covers at the
// current weekly burn; 0 when there is no burn or no balance.
func projectedWeeks(balance, weeklyCost decimal.Decimal) int {
	if !weeklyCost.IsPositive() || balance.IsNegative() {
		return 0
	}
	return int(balance.Div(weeklyCost).IntPart())
}
