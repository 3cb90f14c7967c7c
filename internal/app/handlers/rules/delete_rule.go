package rules

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tarifario/internal/app/commands"
	"tarifario/internal/app/outbox"
	"tarifario/internal/domain/pricing"
	"tarifario/internal/domain/shared/events"
)

const deleteRuleKey = "pricing.rules.delete"

type DeleteRuleCommand struct {
	RuleID string
}

func (c DeleteRuleCommand) Key() string { return deleteRuleKey }

func (c DeleteRuleCommand) Validate() error {
	if strings.TrimSpace(c.RuleID) == "" {
		return errors.New("rules: rule id is required")
	}
	return nil
}

type DeleteRuleResult struct {
	RuleID string `json:"rule_id"`
}

type DeleteRuleHandler struct {
	Rules   pricing.Repository
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Logger  *slog.Logger
	Now     func() time.Time
}

func (h *DeleteRuleHandler) Handle(ctx context.Context, cmd DeleteRuleCommand) (DeleteRuleResult, error) {
	rule, err := h.Rules.ByID(ctx, pricing.RuleID(cmd.RuleID))
	if err != nil {
		return DeleteRuleResult{}, err
	}
	if err := h.Rules.Delete(ctx, rule.ID); err != nil {
		return DeleteRuleResult{}, err
	}

	deleted := pricing.RuleDeletedEvent{RuleID: rule.ID, UnitID: rule.UnitID, At: h.now().UTC()}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, []events.DomainEvent{deleted}); err != nil {
		return DeleteRuleResult{}, err
	}

	if h.Logger != nil {
		h.Logger.Info("pricing rule deleted", "rule_id", rule.ID, "unit_id", rule.UnitID)
	}
	return DeleteRuleResult{RuleID: string(rule.ID)}, nil
}

func (h *DeleteRuleHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ commands.Handler[DeleteRuleCommand, DeleteRuleResult] = (*DeleteRuleHandler)(nil)
