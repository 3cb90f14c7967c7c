package rules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarifario/internal/domain/pricing"
	domainunits "tarifario/internal/domain/units"
	"tarifario/internal/infra/storage/memory"
)

type fixture struct {
	rules  *memory.RuleRepository
	units  *memory.UnitRepository
	outbox *memory.Outbox
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		rules:  memory.NewRuleRepository(),
		units:  memory.NewUnitRepository(),
		outbox: memory.NewOutbox(),
	}
	unit, err := domainunits.NewUnit(domainunits.CreateUnitParams{ID: "u1", Name: "Chalé da serra"})
	require.NoError(t, err)
	require.NoError(t, f.units.Save(context.Background(), unit))
	return f
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
}

func (f *fixture) createHandler() *CreateRuleHandler {
	return &CreateRuleHandler{Rules: f.rules, Units: f.units, Outbox: f.outbox, Now: fixedNow}
}

func TestCreateRuleHandler(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	result, err := f.createHandler().Handle(ctx, CreateRuleCommand{
		RuleID: "r1",
		UnitID: "u1",
		Fields: RuleFields{Name: "Tarifa padrão", Type: pricing.RuleBase, BasePriceCents: 100_00},
	})
	require.NoError(t, err)

	assert.Equal(t, "r1", result.ID)
	assert.Equal(t, "BRL", result.Currency)
	assert.Equal(t, pricing.DefaultMinNights, result.MinNights)
	assert.True(t, result.Active)

	stored, err := f.rules.ByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Tarifa padrão", stored.Name)

	// the created event is staged until the pipeline flushes
	require.NoError(t, f.outbox.Flush(ctx))
	assert.Equal(t, 1, f.outbox.PendingCount())
}

func TestCreateRuleHandlerUnknownUnit(t *testing.T) {
	f := newFixture(t)
	_, err := f.createHandler().Handle(context.Background(), CreateRuleCommand{
		RuleID: "r1",
		UnitID: "missing",
		Fields: RuleFields{Name: "x", Type: pricing.RuleBase, BasePriceCents: 100},
	})
	require.ErrorIs(t, err, domainunits.ErrUnitNotFound)
}

func TestCreateRuleHandlerInvalidRule(t *testing.T) {
	f := newFixture(t)
	_, err := f.createHandler().Handle(context.Background(), CreateRuleCommand{
		RuleID: "r1",
		UnitID: "u1",
		Fields: RuleFields{Name: "verão", Type: pricing.RuleSeasonal, BasePriceCents: 100},
	})
	require.ErrorIs(t, err, pricing.ErrMissingDateRange)

	// nothing must be persisted or staged on a validation failure
	ctx := context.Background()
	_, err = f.rules.ByID(ctx, "r1")
	require.ErrorIs(t, err, pricing.ErrRuleNotFound)
	require.NoError(t, f.outbox.Flush(ctx))
	assert.Zero(t, f.outbox.PendingCount())
}

func TestCreateRuleCommandValidate(t *testing.T) {
	err := CreateRuleCommand{UnitID: "u1"}.Validate()
	require.ErrorIs(t, err, ErrNameRequired)

	err = CreateRuleCommand{Fields: RuleFields{Name: "x"}}.Validate()
	require.Error(t, err)
}

func TestUpdateRuleHandler(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.createHandler().Handle(ctx, CreateRuleCommand{
		RuleID: "r1",
		UnitID: "u1",
		Fields: RuleFields{Name: "Tarifa padrão", Type: pricing.RuleBase, BasePriceCents: 100_00},
	})
	require.NoError(t, err)

	handler := &UpdateRuleHandler{Rules: f.rules, Units: f.units, Outbox: f.outbox, Now: fixedNow}
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	result, err := handler.Handle(ctx, UpdateRuleCommand{
		RuleID: "r1",
		Fields: RuleFields{
			Name: "Alta temporada", Type: pricing.RuleSeasonal, Priority: 10,
			BasePriceCents: 200_00, StartDate: &start, EndDate: &end,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(pricing.RuleSeasonal), result.Type)
	assert.Equal(t, int64(200_00), result.BasePriceCents)
	require.NotNil(t, result.StartDate)
	assert.Equal(t, "2024-06-01", *result.StartDate)

	stored, err := f.rules.ByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Priority)
}

func TestUpdateRuleHandlerUnknownRule(t *testing.T) {
	f := newFixture(t)
	handler := &UpdateRuleHandler{Rules: f.rules, Units: f.units}
	_, err := handler.Handle(context.Background(), UpdateRuleCommand{
		RuleID: "missing",
		Fields: RuleFields{Name: "x", Type: pricing.RuleBase, BasePriceCents: 100},
	})
	require.ErrorIs(t, err, pricing.ErrRuleNotFound)
}

func TestToggleRuleHandler(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.createHandler().Handle(ctx, CreateRuleCommand{
		RuleID: "r1",
		UnitID: "u1",
		Fields: RuleFields{Name: "Tarifa padrão", Type: pricing.RuleBase, BasePriceCents: 100_00},
	})
	require.NoError(t, err)

	handler := &ToggleRuleHandler{Rules: f.rules, Outbox: f.outbox, Now: fixedNow}
	result, err := handler.Handle(ctx, ToggleRuleCommand{RuleID: "r1"})
	require.NoError(t, err)
	assert.False(t, result.Active)

	result, err = handler.Handle(ctx, ToggleRuleCommand{RuleID: "r1"})
	require.NoError(t, err)
	assert.True(t, result.Active)
}

func TestDeleteRuleHandler(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.createHandler().Handle(ctx, CreateRuleCommand{
		RuleID: "r1",
		UnitID: "u1",
		Fields: RuleFields{Name: "Tarifa padrão", Type: pricing.RuleBase, BasePriceCents: 100_00},
	})
	require.NoError(t, err)

	handler := &DeleteRuleHandler{Rules: f.rules, Outbox: f.outbox, Now: fixedNow}
	result, err := handler.Handle(ctx, DeleteRuleCommand{RuleID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "r1", result.RuleID)

	_, err = f.rules.ByID(ctx, "r1")
	require.ErrorIs(t, err, pricing.ErrRuleNotFound)

	_, err = handler.Handle(ctx, DeleteRuleCommand{RuleID: "r1"})
	require.ErrorIs(t, err, pricing.ErrRuleNotFound)
}

func TestListRulesHandlerReturnsEvaluationOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	create := f.createHandler()
	for _, rc := range []struct {
		id       string
		priority int
	}{
		{"low", 1},
		{"high", 10},
		{"mid", 5},
	} {
		_, err := create.Handle(ctx, CreateRuleCommand{
			RuleID: rc.id,
			UnitID: "u1",
			Fields: RuleFields{Name: rc.id, Type: pricing.RuleBase, Priority: rc.priority, BasePriceCents: 100},
		})
		require.NoError(t, err)
	}

	handler := &ListRulesHandler{Rules: f.rules, Units: f.units}
	list, err := handler.Handle(ctx, ListRulesQuery{UnitID: "u1"})
	require.NoError(t, err)
	require.Len(t, list.Rules, 3)
	assert.Equal(t, "high", list.Rules[0].ID)
	assert.Equal(t, "mid", list.Rules[1].ID)
	assert.Equal(t, "low", list.Rules[2].ID)
}

func TestListRulesHandlerOnlyActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	create := f.createHandler()
	for _, id := range []string{"r1", "r2"} {
		_, err := create.Handle(ctx, CreateRuleCommand{
			RuleID: id,
			UnitID: "u1",
			Fields: RuleFields{Name: id, Type: pricing.RuleBase, BasePriceCents: 100},
		})
		require.NoError(t, err)
	}
	toggle := &ToggleRuleHandler{Rules: f.rules, Now: fixedNow}
	_, err := toggle.Handle(ctx, ToggleRuleCommand{RuleID: "r2"})
	require.NoError(t, err)

	handler := &ListRulesHandler{Rules: f.rules, Units: f.units}
	list, err := handler.Handle(ctx, ListRulesQuery{UnitID: "u1", OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, list.Rules, 1)
	assert.Equal(t, "r1", list.Rules[0].ID)
}
