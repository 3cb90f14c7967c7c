package pricing

import (
	"context"
	"errors"
	"strings"
	"time"

	"tarifario/internal/domain/shared/daterange"
	"tarifario/internal/domain/shared/events"
	"tarifario/internal/domain/shared/money"
	"tarifario/internal/domain/units"
)

var (
	ErrRuleNotFound      = errors.New("pricing: rule not found")
	ErrInvalidType       = errors.New("pricing: unknown rule type")
	ErrMissingDateRange  = errors.New("pricing: seasonal and special rules require start and end dates")
	ErrInvertedDateRange = errors.New("pricing: rule end date must not precede start date")
	ErrMissingWeekdays   = errors.New("pricing: day-of-week rules require at least one weekday")
	ErrInvalidWeekday    = errors.New("pricing: weekday must be between Sunday (0) and Saturday (6)")
	ErrNegativePrice     = errors.New("pricing: base price must be non-negative")
	ErrInvalidPriority   = errors.New("pricing: priority out of allowed bounds")
)

// RuleType is the closed set of rule kinds. The evaluator switches
// exhaustively on it, so a new kind is a compile-visible change.
type RuleType string

const (
	RuleBase      RuleType = "BASE"
	RuleSeasonal  RuleType = "SEASONAL"
	RuleDayOfWeek RuleType = "DAY_OF_WEEK"
	RuleSpecial   RuleType = "SPECIAL"
)

func (t RuleType) Valid() bool {
	switch t {
	case RuleBase, RuleSeasonal, RuleDayOfWeek, RuleSpecial:
		return true
	}
	return false
}

// Priority bounds are explicit so an out-of-range value is a validation
// error instead of a silently accepted extreme.
const (
	MinPriority = -10_000
	MaxPriority = 10_000
)

// DefaultMinNights applies when a rule is created without a minimum stay.
const DefaultMinNights = 1

type RuleID string

// Rule is one candidate nightly price for a unit. A rule belongs to exactly
// one unit for its lifetime; the engine only ever reads it.
type Rule struct {
	ID       RuleID
	UnitID   units.UnitID
	Name     string
	Type     RuleType
	Priority int

	BasePrice money.Money

	// MinNights is recorded and surfaced to callers but never consulted by
	// the stay calculator.
	MinNights int

	// StartDate and EndDate bound Seasonal and Special rules. Both are
	// inclusive and normalized to UTC midnight. Nil for other types.
	StartDate *time.Time
	EndDate   *time.Time

	// DaysOfWeek is the weekday set of a DayOfWeek rule. Empty otherwise.
	DaysOfWeek []time.Weekday

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id RuleID) (*Rule, error)
	ListByUnit(ctx context.Context, unitID units.UnitID) ([]*Rule, error)
	Create(ctx context.Context, rule *Rule) error
	Save(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id RuleID) error
}

type CreateRuleParams struct {
	ID         RuleID
	UnitID     units.UnitID
	Name       string
	Type       RuleType
	Priority   int
	BasePrice  money.Money
	MinNights  int
	StartDate  *time.Time
	EndDate    *time.Time
	DaysOfWeek []time.Weekday
	Now        time.Time
}

// NewRule validates params and builds an active rule. Priority defaults to 0
// by zero value, MinNights to DefaultMinNights.
func NewRule(params CreateRuleParams) (*Rule, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, errors.New("pricing: id is required")
	}
	if strings.TrimSpace(string(params.UnitID)) == "" {
		return nil, errors.New("pricing: unit id is required")
	}
	minNights := params.MinNights
	if minNights <= 0 {
		minNights = DefaultMinNights
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	rule := &Rule{
		ID:         params.ID,
		UnitID:     params.UnitID,
		Name:       strings.TrimSpace(params.Name),
		Type:       params.Type,
		Priority:   params.Priority,
		BasePrice:  params.BasePrice,
		MinNights:  minNights,
		StartDate:  normalizeDate(params.StartDate),
		EndDate:    normalizeDate(params.EndDate),
		DaysOfWeek: normalizeWeekdays(params.DaysOfWeek),
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	rule.Record(RuleCreatedEvent{RuleID: rule.ID, UnitID: rule.UnitID, Type: rule.Type, At: now})
	return rule, nil
}

// Validate enforces the per-type structural invariants.
func (r *Rule) Validate() error {
	if !r.Type.Valid() {
		return ErrInvalidType
	}
	if r.BasePrice.IsNegative() {
		return ErrNegativePrice
	}
	if r.Priority < MinPriority || r.Priority > MaxPriority {
		return ErrInvalidPriority
	}
	switch r.Type {
	case RuleSeasonal, RuleSpecial:
		if r.StartDate == nil || r.EndDate == nil {
			return ErrMissingDateRange
		}
		if r.EndDate.Before(*r.StartDate) {
			return ErrInvertedDateRange
		}
	case RuleDayOfWeek:
		if len(r.DaysOfWeek) == 0 {
			return ErrMissingWeekdays
		}
		for _, day := range r.DaysOfWeek {
			if day < time.Sunday || day > time.Saturday {
				return ErrInvalidWeekday
			}
		}
	case RuleBase:
		// no additional constraints
	}
	return nil
}

// Applies reports whether the rule governs the given night.
func (r *Rule) Applies(night time.Time) bool {
	night = daterange.Date(night)
	switch r.Type {
	case RuleBase:
		return true
	case RuleSeasonal, RuleSpecial:
		if r.StartDate == nil || r.EndDate == nil {
			return false
		}
		// Both bounds are inclusive.
		return !night.Before(*r.StartDate) && !night.After(*r.EndDate)
	case RuleDayOfWeek:
		weekday := night.Weekday()
		for _, day := range r.DaysOfWeek {
			if day == weekday {
				return true
			}
		}
		return false
	}
	return false
}

// Toggle flips the active state without touching any other field.
func (r *Rule) Toggle(now time.Time) {
	r.Active = !r.Active
	r.UpdatedAt = now.UTC()
	r.Record(RuleToggledEvent{RuleID: r.ID, UnitID: r.UnitID, Active: r.Active, At: r.UpdatedAt})
}

type UpdateRuleParams struct {
	Name       string
	Type       RuleType
	Priority   int
	BasePrice  money.Money
	MinNights  int
	StartDate  *time.Time
	EndDate    *time.Time
	DaysOfWeek []time.Weekday
	Now        time.Time
}

// UpdateAttributes replaces the mutable fields, revalidating the result.
// Identity, activity and creation time are preserved.
func (r *Rule) UpdateAttributes(params UpdateRuleParams) error {
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	minNights := params.MinNights
	if minNights <= 0 {
		minNights = DefaultMinNights
	}

	updated := *r
	updated.Name = strings.TrimSpace(params.Name)
	updated.Type = params.Type
	updated.Priority = params.Priority
	updated.BasePrice = params.BasePrice
	updated.MinNights = minNights
	updated.StartDate = normalizeDate(params.StartDate)
	updated.EndDate = normalizeDate(params.EndDate)
	updated.DaysOfWeek = normalizeWeekdays(params.DaysOfWeek)
	updated.UpdatedAt = now.UTC()
	if err := updated.Validate(); err != nil {
		return err
	}
	*r = updated
	r.Record(RuleUpdatedEvent{RuleID: r.ID, UnitID: r.UnitID, At: updated.UpdatedAt})
	return nil
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := daterange.Date(*t)
	return &d
}

func normalizeWeekdays(days []time.Weekday) []time.Weekday {
	if len(days) == 0 {
		return nil
	}
	var seen [7]bool
	out := make([]time.Weekday, 0, len(days))
	for _, day := range days {
		if day < time.Sunday || day > time.Saturday {
			// kept as-is so Validate can reject it
			out = append(out, day)
			continue
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		out = append(out, day)
	}
	return out
}
