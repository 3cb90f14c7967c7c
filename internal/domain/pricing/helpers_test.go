package pricing

import (
	"testing"
	"time"

	"tarifario/internal/domain/shared/money"
	"tarifario/internal/domain/units"
)

const testUnit = units.UnitID("unit-1")

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func brl(cents int64) money.Money {
	return money.Must(cents, "BRL")
}

type ruleSpec struct {
	id        string
	name      string
	ruleType  RuleType
	priority  int
	cents     int64
	start     *time.Time
	end       *time.Time
	days      []time.Weekday
	createdAt time.Time
}

func buildRule(t *testing.T, spec ruleSpec) *Rule {
	t.Helper()
	createdAt := spec.createdAt
	if createdAt.IsZero() {
		createdAt = date(2024, time.January, 1)
	}
	name := spec.name
	if name == "" {
		name = spec.id
	}
	rule, err := NewRule(CreateRuleParams{
		ID:         RuleID(spec.id),
		UnitID:     testUnit,
		Name:       name,
		Type:       spec.ruleType,
		Priority:   spec.priority,
		BasePrice:  brl(spec.cents),
		StartDate:  spec.start,
		EndDate:    spec.end,
		DaysOfWeek: spec.days,
		Now:        createdAt,
	})
	if err != nil {
		t.Fatalf("buildRule %s: %v", spec.id, err)
	}
	rule.ClearEvents()
	return rule
}
