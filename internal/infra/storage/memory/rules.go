package memory

import (
	"context"
	"sync"
	"time"

	"tarifario/internal/domain/pricing"
	"tarifario/internal/domain/units"
)

// RuleRepository is a mutex-guarded in-memory rule store. Reads hand out
// copies so an in-flight calculation keeps a stable snapshot even while an
// operator edits rules.
type RuleRepository struct {
	mu    sync.RWMutex
	items map[pricing.RuleID]*pricing.Rule
}

func NewRuleRepository() *RuleRepository {
	return &RuleRepository{items: make(map[pricing.RuleID]*pricing.Rule)}
}

func (r *RuleRepository) ByID(ctx context.Context, id pricing.RuleID) (*pricing.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.items[id]
	if !ok {
		return nil, pricing.ErrRuleNotFound
	}
	return cloneRule(rule), nil
}

func (r *RuleRepository) ListByUnit(ctx context.Context, unitID units.UnitID) ([]*pricing.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*pricing.Rule, 0)
	for _, rule := range r.items {
		if rule.UnitID == unitID {
			out = append(out, cloneRule(rule))
		}
	}
	return out, nil
}

func (r *RuleRepository) Create(ctx context.Context, rule *pricing.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[rule.ID] = cloneRule(rule)
	return nil
}

func (r *RuleRepository) Save(ctx context.Context, rule *pricing.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[rule.ID]; !ok {
		return pricing.ErrRuleNotFound
	}
	r.items[rule.ID] = cloneRule(rule)
	return nil
}

func (r *RuleRepository) Delete(ctx context.Context, id pricing.RuleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pricing.ErrRuleNotFound
	}
	delete(r.items, id)
	return nil
}

func cloneRule(rule *pricing.Rule) *pricing.Rule {
	clone := *rule
	clone.ClearEvents()
	clone.DaysOfWeek = append([]time.Weekday(nil), rule.DaysOfWeek...)
	if rule.StartDate != nil {
		d := *rule.StartDate
		clone.StartDate = &d
	}
	if rule.EndDate != nil {
		d := *rule.EndDate
		clone.EndDate = &d
	}
	return &clone
}

var _ pricing.Repository = (*RuleRepository)(nil)
