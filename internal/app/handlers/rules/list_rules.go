package rules

import (
	"context"

	"tarifario/internal/app/dto"
	"tarifario/internal/app/queries"
	"tarifario/internal/domain/pricing"
	domainunits "tarifario/internal/domain/units"
)

const listRulesKey = "pricing.rules.list"

type ListRulesQuery struct {
	UnitID     string
	OnlyActive bool
}

func (q ListRulesQuery) Key() string { return listRulesKey }

type ListRulesHandler struct {
	Rules pricing.Repository
	Units domainunits.Repository
}

// Handle returns the unit's rules in evaluation order so operators see
// exactly the precedence the engine will apply.
func (h *ListRulesHandler) Handle(ctx context.Context, q ListRulesQuery) (dto.RuleList, error) {
	unit, err := h.Units.ByID(ctx, domainunits.UnitID(q.UnitID))
	if err != nil {
		return dto.RuleList{}, err
	}

	list, err := h.Rules.ListByUnit(ctx, unit.ID)
	if err != nil {
		return dto.RuleList{}, err
	}
	if q.OnlyActive {
		list = pricing.ActiveRules(list)
	}
	return dto.NewRuleList(string(unit.ID), pricing.SortRules(list)), nil
}

var _ queries.Handler[ListRulesQuery, dto.RuleList] = (*ListRulesHandler)(nil)
