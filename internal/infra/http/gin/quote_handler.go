package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"tarifario/internal/app/dto"
	quotesapp "tarifario/internal/app/handlers/quotes"
	"tarifario/internal/app/queries"
)

type QuoteHandler struct {
	Queries queries.Bus
}

type quoteRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// Quote prices a stay for a unit. Dates are calendar dates; the checkout
// night is not charged.
func (h QuoteHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		respondError(c, err)
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		respondError(c, err)
		return
	}
	if checkIn == nil || checkOut == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in and check_out are required"})
		return
	}

	query := quotesapp.QuoteStayQuery{
		UnitID:   c.Param("id"),
		CheckIn:  *checkIn,
		CheckOut: *checkOut,
	}
	result, err := queries.Ask[quotesapp.QuoteStayQuery, dto.StayQuote](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ QuoteHTTP = QuoteHandler{}
