package units

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrUnitNotFound = errors.New("units: unit not found")
	ErrNameRequired = errors.New("units: name is required")
	ErrBadCurrency  = errors.New("units: currency must be a 3-letter code")
)

type UnitID string

// DefaultCurrency is applied when a unit is created without one.
const DefaultCurrency = "BRL"

// Unit is a rentable accommodation whose nightly prices are governed by
// pricing rules. Tenancy and ownership checks happen upstream.
type Unit struct {
	ID        UnitID
	Name      string
	Currency  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	ByID(ctx context.Context, id UnitID) (*Unit, error)
	Save(ctx context.Context, unit *Unit) error
	List(ctx context.Context) ([]*Unit, error)
}

type CreateUnitParams struct {
	ID       UnitID
	Name     string
	Currency string
	Now      time.Time
}

func NewUnit(params CreateUnitParams) (*Unit, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, errors.New("units: id is required")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	currency := strings.ToUpper(strings.TrimSpace(params.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return nil, ErrBadCurrency
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &Unit{
		ID:        params.ID,
		Name:      strings.TrimSpace(params.Name),
		Currency:  currency,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
