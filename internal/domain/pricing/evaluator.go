package pricing

import (
	"sort"
	"time"
)

// ActiveRules returns a new slice holding only the active rules.
func ActiveRules(rules []*Rule) []*Rule {
	out := make([]*Rule, 0, len(rules))
	for _, rule := range rules {
		if rule != nil && rule.Active {
			out = append(out, rule)
		}
	}
	return out
}

// SortRules returns a copy ordered for evaluation: priority descending, ties
// broken by most recent creation first, then by ID descending. The tie-break
// is explicit so selection never depends on store iteration order. The input
// slice is left untouched.
func SortRules(rules []*Rule) []*Rule {
	sorted := append([]*Rule(nil), rules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return sorted
}

// SelectRule scans rules in order and returns the first one applicable to
// the night. The caller must pass a slice already ordered by SortRules;
// first match wins, not highest price. Returns false when no rule applies.
func SelectRule(sorted []*Rule, night time.Time) (*Rule, bool) {
	for _, rule := range sorted {
		if rule.Applies(night) {
			return rule, true
		}
	}
	return nil, false
}
