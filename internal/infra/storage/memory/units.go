package memory

import (
	"context"
	"sort"
	"sync"

	"tarifario/internal/domain/units"
)

// UnitRepository keeps units in memory for demos and tests.
type UnitRepository struct {
	mu    sync.RWMutex
	items map[units.UnitID]*units.Unit
}

func NewUnitRepository() *UnitRepository {
	return &UnitRepository{items: make(map[units.UnitID]*units.Unit)}
}

func (r *UnitRepository) ByID(ctx context.Context, id units.UnitID) (*units.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	unit, ok := r.items[id]
	if !ok {
		return nil, units.ErrUnitNotFound
	}
	clone := *unit
	return &clone, nil
}

func (r *UnitRepository) Save(ctx context.Context, unit *units.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *unit
	r.items[unit.ID] = &clone
	return nil
}

func (r *UnitRepository) List(ctx context.Context) ([]*units.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*units.Unit, 0, len(r.items))
	for _, unit := range r.items {
		clone := *unit
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ units.Repository = (*UnitRepository)(nil)
