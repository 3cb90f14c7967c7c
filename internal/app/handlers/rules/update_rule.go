package rules

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tarifario/internal/app/commands"
	"tarifario/internal/app/dto"
	"tarifario/internal/app/outbox"
	"tarifario/internal/domain/pricing"
	"tarifario/internal/domain/shared/money"
	domainunits "tarifario/internal/domain/units"
)

const updateRuleKey = "pricing.rules.update"

type UpdateRuleCommand struct {
	RuleID string
	Fields RuleFields
}

func (c UpdateRuleCommand) Key() string { return updateRuleKey }

func (c UpdateRuleCommand) Validate() error {
	if strings.TrimSpace(c.RuleID) == "" {
		return errors.New("rules: rule id is required")
	}
	if strings.TrimSpace(c.Fields.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

type UpdateRuleHandler struct {
	Rules   pricing.Repository
	Units   domainunits.Repository
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Logger  *slog.Logger
	Now     func() time.Time
}

func (h *UpdateRuleHandler) Handle(ctx context.Context, cmd UpdateRuleCommand) (*dto.PricingRule, error) {
	rule, err := h.Rules.ByID(ctx, pricing.RuleID(cmd.RuleID))
	if err != nil {
		return nil, err
	}
	unit, err := h.Units.ByID(ctx, domainunits.UnitID(rule.UnitID))
	if err != nil {
		return nil, err
	}

	price, err := money.New(cmd.Fields.BasePriceCents, unit.Currency)
	if err != nil {
		return nil, err
	}

	err = rule.UpdateAttributes(pricing.UpdateRuleParams{
		Name:       cmd.Fields.Name,
		Type:       cmd.Fields.Type,
		Priority:   cmd.Fields.Priority,
		BasePrice:  price,
		MinNights:  cmd.Fields.MinNights,
		StartDate:  cmd.Fields.StartDate,
		EndDate:    cmd.Fields.EndDate,
		DaysOfWeek: cmd.Fields.DaysOfWeek,
		Now:        h.now(),
	})
	if err != nil {
		return nil, err
	}

	if err := h.Rules.Save(ctx, rule); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, rule.PendingEvents()); err != nil {
		return nil, err
	}
	rule.ClearEvents()

	if h.Logger != nil {
		h.Logger.Info("pricing rule updated", "rule_id", rule.ID, "unit_id", rule.UnitID)
	}
	result := dto.NewPricingRule(rule)
	return &result, nil
}

func (h *UpdateRuleHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ commands.Handler[UpdateRuleCommand, *dto.PricingRule] = (*UpdateRuleHandler)(nil)
