package ginserver

import (
	"fmt"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tarifario/internal/app/commands"
	"tarifario/internal/app/dto"
	unitsapp "tarifario/internal/app/handlers/units"
	"tarifario/internal/app/queries"
)

type UnitHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createUnitRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func (h UnitHandler) Create(c *gin.Context) {
	var req createUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	cmd := unitsapp.CreateUnitCommand{
		UnitID:   uuid.NewString(),
		Name:     req.Name,
		Currency: req.Currency,
	}
	result, err := commands.Dispatch[unitsapp.CreateUnitCommand, *dto.Unit](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/v1/units/%s", result.ID))
	c.JSON(http.StatusCreated, result)
}

func (h UnitHandler) List(c *gin.Context) {
	result, err := queries.Ask[unitsapp.ListUnitsQuery, dto.UnitList](c.Request.Context(), h.Queries, unitsapp.ListUnitsQuery{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h UnitHandler) Get(c *gin.Context) {
	query := unitsapp.GetUnitQuery{UnitID: c.Param("id")}
	result, err := queries.Ask[unitsapp.GetUnitQuery, dto.Unit](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ UnitHTTP = UnitHandler{}
