package quotes

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tarifario/internal/app/dto"
	"tarifario/internal/app/queries"
	"tarifario/internal/domain/pricing"
	domainunits "tarifario/internal/domain/units"
)

const quoteStayKey = "pricing.quotes.stay"

type QuoteStayQuery struct {
	UnitID   string
	CheckIn  time.Time
	CheckOut time.Time
}

func (q QuoteStayQuery) Key() string { return quoteStayKey }

type QuoteStayHandler struct {
	Rules  pricing.Repository
	Units  domainunits.Repository
	Logger *slog.Logger
}

// Handle prices a stay for a unit. The rule snapshot is fetched once and the
// whole calculation runs against it, so an edit landing mid-request can never
// produce a mixed result.
func (h *QuoteStayHandler) Handle(ctx context.Context, q QuoteStayQuery) (dto.StayQuote, error) {
	var zero dto.StayQuote
	if strings.TrimSpace(q.UnitID) == "" {
		return zero, errors.New("quotes: unit id is required")
	}

	unit, err := h.Units.ByID(ctx, domainunits.UnitID(q.UnitID))
	if err != nil {
		return zero, err
	}

	snapshot, err := h.Rules.ListByUnit(ctx, unit.ID)
	if err != nil {
		return zero, err
	}

	quote, err := pricing.CalculateStay(unit.Currency, snapshot, q.CheckIn, q.CheckOut)
	if err != nil {
		return zero, err
	}

	if h.Logger != nil && quote.UnmatchedNights > 0 {
		h.Logger.Warn("stay has nights without rule coverage",
			"unit_id", unit.ID, "unmatched", quote.UnmatchedNights, "nights", quote.NightCount)
	}
	return dto.NewStayQuote(string(unit.ID), quote), nil
}

var _ queries.Handler[QuoteStayQuery, dto.StayQuote] = (*QuoteStayHandler)(nil)
