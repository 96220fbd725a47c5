// Package schedule - Date-keyed occurrence set
// Dedup and ordering are structural: occurrences live in a map keyed by
// normalized calendar date and are emitted in sorted-key order, so the
// same date can never appear twice regardless of which walk found it.
package schedule

import (
	"sort"

	"budgetcast/core/types"
)

// dateKey is a lexicographically sortable calendar-date key.
const dateKeyLayout = "2006-01-02"

// occurrenceSet collects at most one occurrence per calendar date.
type occurrenceSet struct {
	byDate map[string]types.Occurrence
}

func newOccurrenceSet() *occurrenceSet {
	return &occurrenceSet{byDate: make(map[string]types.Occurrence)}
}

// add records an occurrence; a second occurrence on the same date is
// dropped (both walks can find the anchor when it lies in-window).
func (s *occurrenceSet) add(occ types.Occurrence) {
	key := occ.Date.Format(dateKeyLayout)
	if _, exists := s.byDate[key]; exists {
		return
	}
	s.byDate[key] = occ
}

// sorted returns the occurrences in ascending date order.
func (s *occurrenceSet) sorted() []types.Occurrence {
	keys := make([]string, 0, len(s.byDate))
	for k := range s.byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]types.Occurrence, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.byDate[k])
	}
	return out
}
