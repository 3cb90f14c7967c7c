package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRulePriorityDominance(t *testing.T) {
	low := buildRule(t, ruleSpec{id: "low", ruleType: RuleBase, priority: 5, cents: 100})
	high := buildRule(t, ruleSpec{id: "high", ruleType: RuleBase, priority: 10, cents: 200})
	night := date(2024, time.June, 1)

	// winner must not depend on input ordering
	for _, input := range [][]*Rule{{low, high}, {high, low}} {
		winner, ok := SelectRule(SortRules(input), night)
		require.True(t, ok)
		assert.Equal(t, RuleID("high"), winner.ID)
	}
}

func TestSelectRuleTieBreakByRecency(t *testing.T) {
	older := buildRule(t, ruleSpec{
		id: "older", ruleType: RuleBase, priority: 5, cents: 100,
		createdAt: date(2024, time.January, 1),
	})
	newer := buildRule(t, ruleSpec{
		id: "newer", ruleType: RuleBase, priority: 5, cents: 200,
		createdAt: date(2024, time.March, 1),
	})

	winner, ok := SelectRule(SortRules([]*Rule{older, newer}), date(2024, time.June, 1))
	require.True(t, ok)
	assert.Equal(t, RuleID("newer"), winner.ID)
}

func TestSelectRuleTieBreakByID(t *testing.T) {
	created := date(2024, time.January, 1)
	a := buildRule(t, ruleSpec{id: "aaa", ruleType: RuleBase, priority: 5, cents: 100, createdAt: created})
	b := buildRule(t, ruleSpec{id: "bbb", ruleType: RuleBase, priority: 5, cents: 200, createdAt: created})

	winner, ok := SelectRule(SortRules([]*Rule{a, b}), date(2024, time.June, 1))
	require.True(t, ok)
	assert.Equal(t, RuleID("bbb"), winner.ID)
}

func TestSelectRuleTypeScoping(t *testing.T) {
	saturdayOnly := buildRule(t, ruleSpec{
		id: "saturday", ruleType: RuleDayOfWeek, priority: 5, cents: 150,
		days: []time.Weekday{time.Saturday},
	})

	// 2024-06-04 is a Tuesday; the rule must fall through to unmatched
	// rather than apply as a fallback.
	_, ok := SelectRule(SortRules([]*Rule{saturdayOnly}), date(2024, time.June, 4))
	assert.False(t, ok)

	winner, ok := SelectRule(SortRules([]*Rule{saturdayOnly}), date(2024, time.June, 1))
	require.True(t, ok)
	assert.Equal(t, RuleID("saturday"), winner.ID)
}

func TestSelectRuleFirstMatchShortCircuits(t *testing.T) {
	cheapHigh := buildRule(t, ruleSpec{id: "cheap-high", ruleType: RuleBase, priority: 10, cents: 50})
	expensiveLow := buildRule(t, ruleSpec{id: "expensive-low", ruleType: RuleBase, priority: 1, cents: 9_000})

	winner, ok := SelectRule(SortRules([]*Rule{expensiveLow, cheapHigh}), date(2024, time.June, 1))
	require.True(t, ok)
	// first match by priority order wins, not the highest price
	assert.Equal(t, RuleID("cheap-high"), winner.ID)
}

func TestSortRulesDoesNotMutateInput(t *testing.T) {
	low := buildRule(t, ruleSpec{id: "low", ruleType: RuleBase, priority: 1, cents: 100})
	high := buildRule(t, ruleSpec{id: "high", ruleType: RuleBase, priority: 9, cents: 200})
	input := []*Rule{low, high}

	sorted := SortRules(input)

	assert.Equal(t, []*Rule{low, high}, input)
	assert.Equal(t, []*Rule{high, low}, sorted)
}

func TestActiveRulesFiltersInactive(t *testing.T) {
	active := buildRule(t, ruleSpec{id: "active", ruleType: RuleBase, cents: 100})
	inactive := buildRule(t, ruleSpec{id: "inactive", ruleType: RuleBase, priority: 99, cents: 200})
	inactive.Toggle(date(2024, time.May, 1))

	got := ActiveRules([]*Rule{inactive, active})
	require.Len(t, got, 1)
	assert.Equal(t, RuleID("active"), got[0].ID)
}
