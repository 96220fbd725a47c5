package allocate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"budgetcast/core/aggregate"
	"budgetcast/core/quality"
	"budgetcast/core/types"
	"budgetcast/internal/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testPeriod = types.PayPeriod{
	Start: types.Date(2026, time.August, 28),
	End:   types.Date(2026, time.September, 3),
}

// summaryFor builds a period summary by running the real aggregator
// over synthetic subscriptions, one per category key, each charging
// once inside the window.
func summaryFor(t *testing.T, charges map[string]string) *aggregate.PeriodSummary {
	t.Helper()

	var subs []*types.Subscription
	for key, amount := range charges {
		subs = append(subs, &types.Subscription{
			ID:               "sub-" + key,
			Price:            dec(amount),
			Frequency:        types.FrequencyWeekly,
			AnchorDate:       types.Date(2026, time.September, 1),
			Status:           types.StatusActive,
			BudgetCategoryID: key,
		})
	}

	summary, err := aggregate.Aggregate(subs, testPeriod, aggregate.FilterActive())
	if err != nil {
		t.Fatalf("building summary: %v", err)
	}
	return summary
}

func TestAllocateRequiredFunding(t *testing.T) {
	summary := summaryFor(t, map[string]string{"cat-bills": "50"})
	cats := []*types.BudgetCategory{{
		ID:               "cat-bills",
		Name:             "Bills",
		WeeklyAllocation: dec("60"),
		CurrentBalance:   decimal.Zero,
		Priority:         5,
		MinimumBuffer:    dec("20"),
	}}

	res, err := Allocate(cats, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alloc := res.Allocation.Categories[0]
	if !alloc.RequiredFunding.Equal(dec("50")) {
		t.Errorf("required funding = %s, want 50", alloc.RequiredFunding)
	}
	if alloc.BalanceHealth != types.HealthCritical {
		t.Errorf("health = %s, want critical", alloc.BalanceHealth)
	}
}

func TestAllocateHealthStates(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		buffer  string
		want    types.BalanceHealth
	}{
		{"at buffer is healthy", "25", "25", types.HealthHealthy},
		{"above buffer is healthy", "100", "25", types.HealthHealthy},
		{"below buffer warns", "10", "25", types.HealthWarning},
		{"zero is critical", "0", "25", types.HealthCritical},
		{"negative is critical", "-5", "25", types.HealthCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := summaryFor(t, map[string]string{"cat-x": "10"})
			cats := []*types.BudgetCategory{{
				ID:             "cat-x",
				Name:           "X",
				CurrentBalance: dec(tt.balance),
				MinimumBuffer:  dec(tt.buffer),
				Priority:       5,
			}}

			res, err := Allocate(cats, summary)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := res.Allocation.Categories[0].BalanceHealth; got != tt.want {
				t.Errorf("health = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAllocateUtilizationAndRunway(t *testing.T) {
	// One $10-weekly subscription: weekly burn 10.
	summary := summaryFor(t, map[string]string{"cat-run": "10"})
	cats := []*types.BudgetCategory{{
		ID:               "cat-run",
		Name:             "Runway",
		WeeklyAllocation: dec("40"),
		CurrentBalance:   dec("100"),
		MinimumBuffer:    dec("25"),
		Priority:         5,
	}}

	res, err := Allocate(cats, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alloc := res.Allocation.Categories[0]
	if !alloc.UtilizationRate.Equal(dec("25")) {
		t.Errorf("utilization = %s%%, want 25%%", alloc.UtilizationRate)
	}
	if alloc.ProjectedWeeks != 10 {
		t.Errorf("projected weeks = %d, want 10", alloc.ProjectedWeeks)
	}
	if alloc.BalanceHealth != types.HealthHealthy {
		t.Errorf("health = %s, want healthy", alloc.BalanceHealth)
	}
}

func TestAllocateZeroAllocationZeroBurn(t *testing.T) {
	// Category with no matching subscriptions: no burn, no utilization,
	// no division errors.
	summary := summaryFor(t, map[string]string{"cat-other": "10"})
	cats := []*types.BudgetCategory{{
		ID:       "cat-idle",
		Name:     "Idle",
		Priority: 3,
	}}

	res, err := Allocate(cats, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alloc := res.Allocation.Categories[0]
	if !alloc.UtilizationRate.IsZero() {
		t.Errorf("utilization = %s, want 0", alloc.UtilizationRate)
	}
	if alloc.ProjectedWeeks != 0 {
		t.Errorf("projected weeks = %d, want 0", alloc.ProjectedWeeks)
	}
	if !alloc.RequiredFunding.IsZero() {
		t.Errorf("required funding = %s, want 0", alloc.RequiredFunding)
	}
}

func TestAllocateRecommendationsRankByPriority(t *testing.T) {
	summary := summaryFor(t, map[string]string{
		"cat-low": "50", "cat-high": "50",
	})
	cats := []*types.BudgetCategory{
		{ID: "cat-low", Name: "Low", Priority: 3},
		{ID: "cat-high", Name: "High", Priority: 8},
	}

	res, err := Allocate(cats, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recs := res.Allocation.FundingRecommendations
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].CategoryID != "cat-high" {
		t.Errorf("first recommendation = %s, want cat-high (priority 8 before 3)", recs[0].CategoryID)
	}
}

func TestAllocateEqualPriorityTieBreaksByID(t *testing.T) {
	summary := summaryFor(t, map[string]string{
		"cat-b": "30", "cat-a": "30",
	})
	// Declared b-first to prove ordering does not depend on input order.
	cats := []*types.BudgetCategory{
		{ID: "cat-b", Name: "B", Priority: 5},
		{ID: "cat-a", Name: "A", Priority: 5},
	}

	res, err := Allocate(cats, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recs := res.Allocation.FundingRecommendations
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].CategoryID != "cat-a" || recs[1].CategoryID != "cat-b" {
		t.Errorf("tie-break order = %s, %s; want cat-a, cat-b", recs[0].CategoryID, recs[1].CategoryID)
	}
}

func TestAllocateFundedCategoryGetsNoRecommendation(t *testing.T) {
	summary := summaryFor(t, map[string]string{"cat-ok": "20"})
	cats := []*types.BudgetCategory{{
		ID:             "cat-ok",
		Name:           "OK",
		CurrentBalance: dec("50"),
		Priority:       5,
	}}

	res, err := Allocate(cats, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Allocation.FundingRecommendations) != 0 {
		t.Errorf("funded category should yield no recommendation, got %v",
			res.Allocation.FundingRecommendations)
	}
}

func TestAllocatePeriodTotals(t *testing.T) {
	summary := summaryFor(t, map[string]string{"cat-1": "30", "cat-2": "20"})
	cats := []*types.BudgetCategory{
		{ID: "cat-1", Name: "One", CurrentBalance: dec("10"), Priority: 5},
		{ID: "cat-2", Name: "Two", CurrentBalance: dec("15"), Priority: 5},
	}

	res, err := Allocate(cats, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := res.Allocation
	if !a.TotalWeeklyNeed.Equal(dec("50")) {
		t.Errorf("total need = %s, want 50", a.TotalWeeklyNeed)
	}
	if !a.TotalCurrentBalance.Equal(dec("25")) {
		t.Errorf("total balance = %s, want 25", a.TotalCurrentBalance)
	}
	if !a.AdditionalFundingRequired.Equal(dec("25")) {
		t.Errorf("additional funding = %s, want 25", a.AdditionalFundingRequired)
	}
}

func TestAllocateSurplusNeverNegative(t *testing.T) {
	summary := summaryFor(t, map[string]string{"cat-1": "10"})
	cats := []*types.BudgetCategory{
		{ID: "cat-1", Name: "One", CurrentBalance: dec("500"), Priority: 5},
	}

	res, err := Allocate(cats, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Allocation.AdditionalFundingRequired.IsZero() {
		t.Errorf("additional funding = %s, want 0 when balances cover the need",
			res.Allocation.AdditionalFundingRequired)
	}
}

func TestAllocateMatchesCategoryByName(t *testing.T) {
	// Subscription carries only a free-text category name.
	subs := []*types.Subscription{{
		ID:         "sub-fuel",
		Price:      dec("35"),
		Frequency:  types.FrequencyWeekly,
		AnchorDate: types.Date(2026, time.September, 1),
		Status:     types.StatusActive,
		Category:   "Transport",
	}}
	summary, err := aggregate.Aggregate(subs, testPeriod, aggregate.FilterActive())
	if err != nil {
		t.Fatalf("building summary: %v", err)
	}

	cats := []*types.BudgetCategory{{
		ID: "cat-transport", Name: "Transport", Priority: 5,
	}}

	res, err := Allocate(cats, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Allocation.Categories[0].TotalDue.Equal(dec("35")) {
		t.Errorf("total due = %s, want 35 (matched by name)", res.Allocation.Categories[0].TotalDue)
	}
}

func TestAllocateSumsIDAndNameReferences(t *testing.T) {
	// One subscription references the category by ID, the other by
	// free-text name. Both fund the same envelope, so totals combine.
	subs := []*types.Subscription{
		{
			ID:               "sub-stream",
			Price:            dec("15"),
			Frequency:        types.FrequencyWeekly,
			AnchorDate:       types.Date(2026, time.September, 1),
			Status:           types.StatusActive,
			BudgetCategoryID: "cat-ent",
		},
		{
			ID:         "sub-music",
			Price:      dec("10"),
			Frequency:  types.FrequencyWeekly,
			AnchorDate: types.Date(2026, time.September, 1),
			Status:     types.StatusActive,
			Category:   "Entertainment",
		},
	}
	summary, err := aggregate.Aggregate(subs, testPeriod, aggregate.FilterActive())
	if err != nil {
		t.Fatalf("building summary: %v", err)
	}

	cats := []*types.BudgetCategory{{
		ID: "cat-ent", Name: "Entertainment", Priority: 5,
	}}

	res, err := Allocate(cats, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alloc := res.Allocation.Categories[0]
	if !alloc.TotalDue.Equal(dec("25")) {
		t.Errorf("total due = %s, want 25 (ID-matched 15 + name-matched 10)", alloc.TotalDue)
	}
	if !alloc.RequiredFunding.Equal(dec("25")) {
		t.Errorf("required funding = %s, want 25", alloc.RequiredFunding)
	}
	// Weekly burn combines too: both are weekly subscriptions.
	if alloc.ProjectedWeeks != 0 {
		t.Errorf("projected weeks = %d, want 0 with no balance", alloc.ProjectedWeeks)
	}

	recs := res.Allocation.FundingRecommendations
	if len(recs) != 1 || !recs[0].Amount.Equal(dec("25")) {
		t.Errorf("recommendation = %v, want one for the combined 25", recs)
	}
}

func TestAllocateIdenticalIDAndNameKeyNotDoubleCounted(t *testing.T) {
	// A category whose ID equals its lowercased name must not count
	// the same group twice.
	subs := []*types.Subscription{{
		ID:               "sub-fuel",
		Price:            dec("30"),
		Frequency:        types.FrequencyWeekly,
		AnchorDate:       types.Date(2026, time.September, 1),
		Status:           types.StatusActive,
		BudgetCategoryID: "transport",
	}}
	summary, err := aggregate.Aggregate(subs, testPeriod, aggregate.FilterActive())
	if err != nil {
		t.Fatalf("building summary: %v", err)
	}

	cats := []*types.BudgetCategory{{
		ID: "transport", Name: "Transport", Priority: 5,
	}}

	res, err := Allocate(cats, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Allocation.Categories[0].TotalDue.Equal(dec("30")) {
		t.Errorf("total due = %s, want 30 counted once", res.Allocation.Categories[0].TotalDue)
	}
}

func TestAllocateNormalizesMalformedCategory(t *testing.T) {
	summary := summaryFor(t, map[string]string{"cat-bad": "10"})
	cats := []*types.BudgetCategory{{
		ID:               "cat-bad",
		Name:             "Bad",
		WeeklyAllocation: dec("-40"),
		Priority:         99,
	}}

	res, err := Allocate(cats, summary)
	if err != nil {
		t.Fatalf("malformed data must not fail: %v", err)
	}

	codes := map[quality.Code]bool{}
	for _, w := range res.Warnings {
		codes[w.Code] = true
	}
	if !codes[quality.CodeNegativeAllocation] {
		t.Error("expected a negative_allocation warning")
	}
	if !codes[quality.CodeInvalidPriority] {
		t.Error("expected an invalid_priority warning")
	}

	// Normalized allocation 0 means utilization 0, not a division blowup.
	if !res.Allocation.Categories[0].UtilizationRate.IsZero() {
		t.Errorf("utilization = %s, want 0", res.Allocation.Categories[0].UtilizationRate)
	}
	// Normalized priority 0 still ranks below any valid priority.
	if len(res.Allocation.FundingRecommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(res.Allocation.FundingRecommendations))
	}
	if res.Allocation.FundingRecommendations[0].Priority != 0 {
		t.Errorf("recommendation priority = %d, want normalized 0",
			res.Allocation.FundingRecommendations[0].Priority)
	}
}

func TestAllocateNilCategoriesIsContractError(t *testing.T) {
	summary := summaryFor(t, map[string]string{"cat-1": "10"})
	_, err := Allocate(nil, summary)
	if err == nil {
		t.Fatal("expected error for nil categories")
	}
	if !errors.IsType(err, errors.TypeContract) {
		t.Errorf("expected CONTRACT_ERROR, got %v", err)
	}
}

func TestAllocateNilSummaryIsContractError(t *testing.T) {
	_, err := Allocate([]*types.BudgetCategory{}, nil)
	if err == nil {
		t.Fatal("expected error for nil summary")
	}
	if !errors.IsType(err, errors.TypeContract) {
		t.Errorf("expected CONTRACT_ERROR, got %v", err)
	}
}

func TestAllocateDoesNotMutateBalances(t *testing.T) {
	summary := summaryFor(t, map[string]string{"cat-1": "100"})
	cat := &types.BudgetCategory{ID: "cat-1", Name: "One", CurrentBalance: dec("30"), Priority: 5}

	if _, err := Allocate([]*types.BudgetCategory{cat}, summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cat.CurrentBalance.Equal(dec("30")) {
		t.Errorf("allocator mutated balance to %s", cat.CurrentBalance)
	}
}
