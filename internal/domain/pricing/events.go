package pricing

import (
	"time"

	"tarifario/internal/domain/units"
)

type RuleCreatedEvent struct {
	RuleID RuleID       `json:"rule_id"`
	UnitID units.UnitID `json:"unit_id"`
	Type   RuleType     `json:"type"`
	At     time.Time    `json:"at"`
}

func (e RuleCreatedEvent) EventName() string     { return "pricing.rule.created" }
func (e RuleCreatedEvent) AggregateID() string   { return string(e.RuleID) }
func (e RuleCreatedEvent) OccurredAt() time.Time { return e.At }

type RuleUpdatedEvent struct {
	RuleID RuleID       `json:"rule_id"`
	UnitID units.UnitID `json:"unit_id"`
	At     time.Time    `json:"at"`
}

func (e RuleUpdatedEvent) EventName() string     { return "pricing.rule.updated" }
func (e RuleUpdatedEvent) AggregateID() string   { return string(e.RuleID) }
func (e RuleUpdatedEvent) OccurredAt() time.Time { return e.At }

type RuleToggledEvent struct {
	RuleID RuleID       `json:"rule_id"`
	UnitID units.UnitID `json:"unit_id"`
	Active bool         `json:"active"`
	At     time.Time    `json:"at"`
}

func (e RuleToggledEvent) EventName() string     { return "pricing.rule.toggled" }
func (e RuleToggledEvent) AggregateID() string   { return string(e.RuleID) }
func (e RuleToggledEvent) OccurredAt() time.Time { return e.At }

type RuleDeletedEvent struct {
	RuleID RuleID       `json:"rule_id"`
	UnitID units.UnitID `json:"unit_id"`
	At     time.Time    `json:"at"`
}

func (e RuleDeletedEvent) EventName() string     { return "pricing.rule.deleted" }
func (e RuleDeletedEvent) AggregateID() string   { return string(e.RuleID) }
func (e RuleDeletedEvent) OccurredAt() time.Time { return e.At }
