// Package aggregate runs the occurrence projector across a subscription
// collection and groups the results by category and status for one pay
// period. Grouping iteration is deterministic: group keys are emitted in
// sorted order so identical inputs always yield identical summaries.
package aggregate

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"budgetcast/core/frequency"
	"budgetcast/core/quality"
	"budgetcast/core/schedule"
	"budgetcast/core/types"
)

// UncategorizedKey groups occurrences of subscriptions that name no
// category at all.
const UncategorizedKey = "uncategorized"

// StatusFilter selects which subscription statuses participate.
type StatusFilter struct {
	statuses map[types.Status]bool
	all      bool
}

// FilterAll admits every status.
func FilterAll() StatusFilter {
	return StatusFilter{all: true}
}

// FilterActive admits only active subscriptions.
func FilterActive() StatusFilter {
	return FilterStatuses(types.StatusActive)
}

// FilterStatuses admits an explicit status set.
func FilterStatuses(statuses ...types.Status) StatusFilter {
	set := make(map[types.Status]bool, len(statuses))
	for _, s := range statuses {
		set[s] = true
	}
	return StatusFilter{statuses: set}
}

// Admits reports whether a subscription passes the filter.
func (f StatusFilter) Admits(sub *types.Subscription) bool {
	return f.all || f.statuses[sub.Status]
}

// CategoryGroup is one category's slice of a period summary.
type CategoryGroup struct {
	// Key is the grouping key: BudgetCategoryID when set, else the
	// lowercased category name, else UncategorizedKey
	Key string `json:"key"`

	// Occurrences inside the period, ascending by date
	Occurrences []types.Occurrence `json:"occurrences"`

	// TotalCost is the sum of occurrence costs
	TotalCost decimal.Decimal `json:"total_cost"`

	// WeeklyCost is the normalized weekly burn of the group's
	// subscriptions, independent of what lands in this window.
	// The allocator uses it for utilization and runway.
	WeeklyCost decimal.Decimal `json:"weekly_cost"`
}

// StatusGroup is one status's slice of a period summary.
type StatusGroup struct {
	// Status is the grouping key
	Status types.Status `json:"status"`

	// Occurrences inside the period, ascending by date
	Occurrences []types.Occurrence `json:"occurrences"`

	// TotalCost is the sum of occurrence costs
	TotalCost decimal.Decimal `json:"total_cost"`
}

// PeriodSummary is the aggregated billing picture for one pay period.
type PeriodSummary struct {
	// Period is the window that was aggregated
	Period types.PayPeriod `json:"period"`

	// Occurrences is every admitted occurrence, ascending by date then
	// subscription ID
	Occurrences []types.Occurrence `json:"occurrences"`

	// ByCategory groups occurrences per category key, sorted by key
	ByCategory []CategoryGroup `json:"by_category"`

	// ByStatus groups occurrences per subscription status, sorted by status
	ByStatus []StatusGroup `json:"by_status"`

	// TotalCost is the sum of all admitted occurrence costs
	TotalCost decimal.Decimal `json:"total_cost"`

	// OccurrenceCount is len(Occurrences)
	OccurrenceCount int `json:"occurrence_count"`

	// Warnings collects data-quality substitutions made while
	// projecting and normalizing
	Warnings []quality.Warning `json:"warnings,omitempty"`
}

// Category returns the group for a key, if present.
func (s *PeriodSummary) Category(key string) (CategoryGroup, bool) {
	for _, g := range s.ByCategory {
		if g.Key == key {
			return g, true
		}
	}
	return CategoryGroup{}, false
}

// GroupKey returns the category grouping key for a subscription.
func GroupKey(sub *types.Subscription) string {
	if sub.BudgetCategoryID != "" {
		return sub.BudgetCategoryID
	}
	if name := strings.TrimSpace(sub.Category); name != "" {
		return strings.ToLower(name)
	}
	return UncategorizedKey
}

// Aggregate projects every admitted subscription into the period and
// groups the occurrences. A nil collection or inverted period is a
// contract violation; per-subscription data defects surface as warnings.
func Aggregate(subs []*types.Subscription, p types.PayPeriod, filter StatusFilter) (*PeriodSummary, error) {
	if subs == nil {
		return nil, contractNilSubscriptions()
	}
	if !p.Valid() {
		return nil, contractInvertedPeriod(p)
	}

	summary := &PeriodSummary{
		Period:    p,
		TotalCost: decimal.Zero,
	}

	byCategory := make(map[string]*CategoryGroup)
	byStatus := make(map[types.Status]*StatusGroup)

	// Projection and weekly normalization both re-parse subscription
	// fields; one defect surfaces once per subject and field.
	type warnKey struct {
		code    quality.Code
		subject string
		field   string
	}
	seen := make(map[warnKey]bool)
	record := func(warns []quality.Warning) {
		for _, w := range warns {
			key := warnKey{w.Code, w.SubjectID, w.Field}
			if seen[key] {
				continue
			}
			seen[key] = true
			summary.Warnings = append(summary.Warnings, w)
		}
	}

	for _, sub := range subs {
		if sub == nil || !filter.Admits(sub) {
			continue
		}

		occs, warns, err := schedule.Project(sub, p)
		if err != nil {
			return nil, err
		}
		record(warns)

		key := GroupKey(sub)
		cg, ok := byCategory[key]
		if !ok {
			cg = &CategoryGroup{Key: key, TotalCost: decimal.Zero, WeeklyCost: decimal.Zero}
			byCategory[key] = cg
		}
		weekly, wWarns := frequency.Weekly(sub)
		record(wWarns)
		cg.WeeklyCost = cg.WeeklyCost.Add(weekly)

		sg, ok := byStatus[sub.Status]
		if !ok {
			sg = &StatusGroup{Status: sub.Status, TotalCost: decimal.Zero}
			byStatus[sub.Status] = sg
		}

		for _, occ := range occs {
			summary.Occurrences = append(summary.Occurrences, occ)
			summary.TotalCost = summary.TotalCost.Add(occ.Cost)

			cg.Occurrences = append(cg.Occurrences, occ)
			cg.TotalCost = cg.TotalCost.Add(occ.Cost)

			sg.Occurrences = append(sg.Occurrences, occ)
			sg.TotalCost = sg.TotalCost.Add(occ.Cost)
		}
	}

	sort.SliceStable(summary.Occurrences, func(i, j int) bool {
		a, b := summary.Occurrences[i], summary.Occurrences[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.SubscriptionID < b.SubscriptionID
	})
	summary.OccurrenceCount = len(summary.Occurrences)

	catKeys := make([]string, 0, len(byCategory))
	for k := range byCategory {
		catKeys = append(catKeys, k)
	}
	sort.Strings(catKeys)
	for _, k := range catKeys {
		summary.ByCategory = append(summary.ByCategory, *byCategory[k])
	}

	statusKeys := make([]string, 0, len(byStatus))
	for s := range byStatus {
		statusKeys = append(statusKeys, string(s))
	}
	sort.Strings(statusKeys)
	for _, s := range statusKeys {
		summary.ByStatus = append(summary.ByStatus, *byStatus[types.Status(s)])
	}

	return summary, nil
}
