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

const createRuleKey = "pricing.rules.create"

var ErrNameRequired = errors.New("rules: rule name is required")

type CreateRuleCommand struct {
	RuleID string
	UnitID string
	Fields RuleFields
}

func (c CreateRuleCommand) Key() string { return createRuleKey }

func (c CreateRuleCommand) Validate() error {
	if strings.TrimSpace(c.UnitID) == "" {
		return errors.New("rules: unit id is required")
	}
	if strings.TrimSpace(c.Fields.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

type CreateRuleHandler struct {
	Rules   pricing.Repository
	Units   domainunits.Repository
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Logger  *slog.Logger
	Now     func() time.Time
}

func (h *CreateRuleHandler) Handle(ctx context.Context, cmd CreateRuleCommand) (*dto.PricingRule, error) {
	unit, err := h.Units.ByID(ctx, domainunits.UnitID(cmd.UnitID))
	if err != nil {
		return nil, err
	}

	price, err := money.New(cmd.Fields.BasePriceCents, unit.Currency)
	if err != nil {
		return nil, err
	}

	rule, err := pricing.NewRule(pricing.CreateRuleParams{
		ID:         pricing.RuleID(cmd.RuleID),
		UnitID:     unit.ID,
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

	if err := h.Rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, rule.PendingEvents()); err != nil {
		return nil, err
	}
	rule.ClearEvents()

	if h.Logger != nil {
		h.Logger.Info("pricing rule created", "rule_id", rule.ID, "unit_id", rule.UnitID, "type", rule.Type)
	}
	result := dto.NewPricingRule(rule)
	return &result, nil
}

func (h *CreateRuleHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ commands.Handler[CreateRuleCommand, *dto.PricingRule] = (*CreateRuleHandler)(nil)
