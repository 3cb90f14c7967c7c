package rules

import (
	"time"

	"tarifario/internal/domain/pricing"
)

// RuleFields carries the writable attributes shared by create and update.
// Prices are cents in the owning unit's currency.
type RuleFields struct {
	Name           string
	Type           pricing.RuleType
	Priority       int
	BasePriceCents int64
	MinNights      int
	StartDate      *time.Time
	EndDate        *time.Time
	DaysOfWeek     []time.Weekday
}
