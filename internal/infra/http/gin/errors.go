package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"tarifario/internal/app/commands"
	"tarifario/internal/app/queries"
	"tarifario/internal/domain/pricing"
	"tarifario/internal/domain/shared/money"
	"tarifario/internal/domain/units"
)

// respondError maps domain errors onto HTTP statuses. Malformed rule input is
// distinguishable (422) from a bad request shape (400) so operators can tell
// "fix the rule" from "fix the call".
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, units.ErrUnitNotFound), errors.Is(err, pricing.ErrRuleNotFound):
		return http.StatusNotFound
	case errors.Is(err, pricing.ErrMissingDateRange),
		errors.Is(err, pricing.ErrInvertedDateRange),
		errors.Is(err, pricing.ErrMissingWeekdays),
		errors.Is(err, pricing.ErrInvalidWeekday),
		errors.Is(err, pricing.ErrNegativePrice),
		errors.Is(err, pricing.ErrInvalidPriority),
		errors.Is(err, pricing.ErrInvalidType),
		errors.Is(err, money.ErrInvalidCurrency),
		errors.Is(err, money.ErrCurrencyMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commands.ErrHandlerNotFound),
		errors.Is(err, queries.ErrHandlerNotFound),
		errors.Is(err, commands.ErrNilBus),
		errors.Is(err, queries.ErrNilBus):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
