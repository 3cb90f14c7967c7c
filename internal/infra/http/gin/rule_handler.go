package ginserver

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tarifario/internal/app/commands"
	"tarifario/internal/app/dto"
	rulesapp "tarifario/internal/app/handlers/rules"
	"tarifario/internal/app/queries"
	"tarifario/internal/domain/pricing"
)

type RuleHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type ruleRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Priority       int    `json:"priority"`
	BasePriceCents int64  `json:"base_price_cents"`
	MinNights      int    `json:"min_nights"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	DaysOfWeek     []int  `json:"days_of_week"`
}

func (h RuleHandler) List(c *gin.Context) {
	onlyActive, _ := strconv.ParseBool(c.Query("active"))
	query := rulesapp.ListRulesQuery{
		UnitID:     c.Param("id"),
		OnlyActive: onlyActive,
	}
	result, err := queries.Ask[rulesapp.ListRulesQuery, dto.RuleList](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h RuleHandler) Create(c *gin.Context) {
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	fields, err := buildRuleFields(req)
	if err != nil {
		respondError(c, err)
		return
	}

	cmd := rulesapp.CreateRuleCommand{
		RuleID: uuid.NewString(),
		UnitID: c.Param("id"),
		Fields: fields,
	}
	result, err := commands.Dispatch[rulesapp.CreateRuleCommand, *dto.PricingRule](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/v1/rules/%s", result.ID))
	c.JSON(http.StatusCreated, result)
}

func (h RuleHandler) Update(c *gin.Context) {
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	fields, err := buildRuleFields(req)
	if err != nil {
		respondError(c, err)
		return
	}

	cmd := rulesapp.UpdateRuleCommand{
		RuleID: c.Param("id"),
		Fields: fields,
	}
	result, err := commands.Dispatch[rulesapp.UpdateRuleCommand, *dto.PricingRule](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h RuleHandler) Delete(c *gin.Context) {
	cmd := rulesapp.DeleteRuleCommand{RuleID: c.Param("id")}
	result, err := commands.Dispatch[rulesapp.DeleteRuleCommand, rulesapp.DeleteRuleResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h RuleHandler) Toggle(c *gin.Context) {
	cmd := rulesapp.ToggleRuleCommand{RuleID: c.Param("id")}
	result, err := commands.Dispatch[rulesapp.ToggleRuleCommand, *dto.PricingRule](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func buildRuleFields(req ruleRequest) (rulesapp.RuleFields, error) {
	fields := rulesapp.RuleFields{
		Name:           req.Name,
		Type:           pricing.RuleType(req.Type),
		Priority:       req.Priority,
		BasePriceCents: req.BasePriceCents,
		MinNights:      req.MinNights,
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return rulesapp.RuleFields{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return rulesapp.RuleFields{}, err
	}
	fields.StartDate = start
	fields.EndDate = end
	for _, day := range req.DaysOfWeek {
		fields.DaysOfWeek = append(fields.DaysOfWeek, time.Weekday(day))
	}
	return fields, nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dto.DateLayout, raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", raw, err)
	}
	return &t, nil
}

var _ RuleHTTP = RuleHandler{}
