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
)

const toggleRuleKey = "pricing.rules.toggle"

type ToggleRuleCommand struct {
	RuleID string
}

func (c ToggleRuleCommand) Key() string { return toggleRuleKey }

func (c ToggleRuleCommand) Validate() error {
	if strings.TrimSpace(c.RuleID) == "" {
		return errors.New("rules: rule id is required")
	}
	return nil
}

type ToggleRuleHandler struct {
	Rules   pricing.Repository
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Logger  *slog.Logger
	Now     func() time.Time
}

func (h *ToggleRuleHandler) Handle(ctx context.Context, cmd ToggleRuleCommand) (*dto.PricingRule, error) {
	rule, err := h.Rules.ByID(ctx, pricing.RuleID(cmd.RuleID))
	if err != nil {
		return nil, err
	}

	rule.Toggle(h.now())
	if err := h.Rules.Save(ctx, rule); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, rule.PendingEvents()); err != nil {
		return nil, err
	}
	rule.ClearEvents()

	if h.Logger != nil {
		h.Logger.Info("pricing rule toggled", "rule_id", rule.ID, "active", rule.Active)
	}
	result := dto.NewPricingRule(rule)
	return &result, nil
}

func (h *ToggleRuleHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ commands.Handler[ToggleRuleCommand, *dto.PricingRule] = (*ToggleRuleHandler)(nil)
