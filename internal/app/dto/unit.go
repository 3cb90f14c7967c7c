package dto

import (
	"time"

	"tarifario/internal/domain/units"
)

type Unit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUnit(unit *units.Unit) Unit {
	return Unit{
		ID:        string(unit.ID),
		Name:      unit.Name,
		Currency:  unit.Currency,
		Active:    unit.Active,
		CreatedAt: unit.CreatedAt,
		UpdatedAt: unit.UpdatedAt,
	}
}

type UnitList struct {
	Units []Unit `json:"units"`
}

func NewUnitList(list []*units.Unit) UnitList {
	out := UnitList{Units: make([]Unit, 0, len(list))}
	for _, unit := range list {
		out.Units = append(out.Units, NewUnit(unit))
	}
	return out
}
