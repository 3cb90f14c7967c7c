package units

import (
	"context"

	"tarifario/internal/app/dto"
	"tarifario/internal/app/queries"
	domainunits "tarifario/internal/domain/units"
)

const (
	getUnitKey   = "units.get"
	listUnitsKey = "units.list"
)

type GetUnitQuery struct {
	UnitID string
}

func (q GetUnitQuery) Key() string { return getUnitKey }

type GetUnitHandler struct {
	Units domainunits.Repository
}

func (h *GetUnitHandler) Handle(ctx context.Context, q GetUnitQuery) (dto.Unit, error) {
	unit, err := h.Units.ByID(ctx, domainunits.UnitID(q.UnitID))
	if err != nil {
		return dto.Unit{}, err
	}
	return dto.NewUnit(unit), nil
}

type ListUnitsQuery struct{}

func (q ListUnitsQuery) Key() string { return listUnitsKey }

type ListUnitsHandler struct {
	Units domainunits.Repository
}

func (h *ListUnitsHandler) Handle(ctx context.Context, q ListUnitsQuery) (dto.UnitList, error) {
	list, err := h.Units.List(ctx)
	if err != nil {
		return dto.UnitList{}, err
	}
	return dto.NewUnitList(list), nil
}

var (
	_ queries.Handler[GetUnitQuery, dto.Unit]       = (*GetUnitHandler)(nil)
	_ queries.Handler[ListUnitsQuery, dto.UnitList] = (*ListUnitsHandler)(nil)
)
