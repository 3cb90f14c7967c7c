package units

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tarifario/internal/app/commands"
	"tarifario/internal/app/dto"
	domainunits "tarifario/internal/domain/units"
)

const createUnitKey = "units.create"

type CreateUnitCommand struct {
	UnitID   string
	Name     string
	Currency string
}

func (c CreateUnitCommand) Key() string { return createUnitKey }

func (c CreateUnitCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("units: name is required")
	}
	return nil
}

type CreateUnitHandler struct {
	Units  domainunits.Repository
	Logger *slog.Logger
	Now    func() time.Time
}

func (h *CreateUnitHandler) Handle(ctx context.Context, cmd CreateUnitCommand) (*dto.Unit, error) {
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	unit, err := domainunits.NewUnit(domainunits.CreateUnitParams{
		ID:       domainunits.UnitID(cmd.UnitID),
		Name:     cmd.Name,
		Currency: cmd.Currency,
		Now:      now,
	})
	if err != nil {
		return nil, err
	}
	if err := h.Units.Save(ctx, unit); err != nil {
		return nil, err
	}
	if h.Logger != nil {
		h.Logger.Info("unit created", "unit_id", unit.ID, "currency", unit.Currency)
	}
	result := dto.NewUnit(unit)
	return &result, nil
}

var _ commands.Handler[CreateUnitCommand, *dto.Unit] = (*CreateUnitHandler)(nil)
