package dto

import (
	"time"

	"tarifario/internal/domain/pricing"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

type PricingRule struct {
	ID             string    `json:"id"`
	UnitID         string    `json:"unit_id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Priority       int       `json:"priority"`
	BasePriceCents int64     `json:"base_price_cents"`
	Currency       string    `json:"currency"`
	MinNights      int       `json:"min_nights"`
	StartDate      *string   `json:"start_date,omitempty"`
	EndDate        *string   `json:"end_date,omitempty"`
	DaysOfWeek     []int     `json:"days_of_week,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewPricingRule(rule *pricing.Rule) PricingRule {
	out := PricingRule{
		ID:             string(rule.ID),
		UnitID:         string(rule.UnitID),
		Name:           rule.Name,
		Type:           string(rule.Type),
		Priority:       rule.Priority,
		BasePriceCents: rule.BasePrice.Amount,
		Currency:       rule.BasePrice.Currency,
		MinNights:      rule.MinNights,
		Active:         rule.Active,
		CreatedAt:      rule.CreatedAt,
		UpdatedAt:      rule.UpdatedAt,
	}
	if rule.StartDate != nil {
		s := rule.StartDate.Format(DateLayout)
		out.StartDate = &s
	}
	if rule.EndDate != nil {
		s := rule.EndDate.Format(DateLayout)
		out.EndDate = &s
	}
	for _, day := range rule.DaysOfWeek {
		out.DaysOfWeek = append(out.DaysOfWeek, int(day))
	}
	return out
}

type RuleList struct {
	UnitID string        `json:"unit_id"`
	Rules  []PricingRule `json:"rules"`
}

func NewRuleList(unitID string, rules []*pricing.Rule) RuleList {
	list := RuleList{UnitID: unitID, Rules: make([]PricingRule, 0, len(rules))}
	for _, rule := range rules {
		list.Rules = append(list.Rules, NewPricingRule(rule))
	}
	return list
}
