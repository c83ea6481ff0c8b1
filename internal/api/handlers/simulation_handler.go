package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/report"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/service"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/simulation"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var dateLayouts = []string{"2006-01-02", time.RFC3339}

type SimulationHandler struct {
	service *service.SimulationService
}

func NewSimulationHandler(service *service.SimulationService) *SimulationHandler {
	return &SimulationHandler{service: service}
}

// simulationRequest is the JSON body of a simulation; dates are YYYY-MM-DD or RFC 3339
type simulationRequest struct {
	SKUID        string   `json:"sku_id"`
	LeadTimeMode string   `json:"lead_time_mode"`
	OrderMonths  float64  `json:"order_months"`
	InitialStock *float64 `json:"initial_stock"`
	WarningRatio *float64 `json:"warning_ratio"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	DisplayDays  *int     `json:"display_days"`
}

type compareRequest struct {
	Base      simulationRequest `json:"base"`
	Scenarios []domain.Scenario `json:"scenarios"`
}

func (r simulationRequest) params() (domain.SimulationParams, error) {
	p := domain.SimulationParams{
		SKUID:        strings.TrimSpace(r.SKUID),
		LeadTimeMode: domain.LeadTimeMode(strings.TrimSpace(r.LeadTimeMode)),
		OrderMonths:  r.OrderMonths,
		InitialStock: r.InitialStock,
		WarningRatio: r.WarningRatio,
		DisplayDays:  r.DisplayDays,
	}
	var err error
	if p.StartDate, err = parseDate(r.StartDate); err != nil {
		return p, err
	}
	if p.EndDate, err = parseDate(r.EndDate); err != nil {
		return p, err
	}
	return p, nil
}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			day := domain.Day(t)
			return &day, nil
		}
	}
	return nil, errors.Wrapf(domain.ErrInvalidInput, "invalid date %q, expected YYYY-MM-DD", value)
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSKUNotFound), errors.Is(err, domain.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDataGap), errors.Is(err, domain.ErrEmptySeries), errors.Is(err, domain.ErrEmptyHistory):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
		c.JSON(status, gin.H{"error": message})
		return
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}

func (h *SimulationHandler) bindParams(c *gin.Context) (domain.SimulationParams, bool) {
	var req simulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return domain.SimulationParams{}, false
	}
	params, err := req.params()
	if err != nil {
		respondError(c, err, "invalid simulation request")
		return params, false
	}
	return params, true
}

func (h *SimulationHandler) ListSKUs(c *gin.Context) {
	skus, err := h.service.ListSKUs(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch skus")
		return
	}
	c.JSON(http.StatusOK, skus)
}

func (h *SimulationHandler) GetDemand(c *gin.Context) {
	sku := strings.TrimSpace(c.Param("sku"))
	start, err := parseDate(c.Query("start"))
	if err != nil {
		respondError(c, err, "invalid start date")
		return
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		respondError(c, err, "invalid end date")
		return
	}

	series, err := h.service.DemandSeries(c.Request.Context(), sku, start, end)
	if err != nil {
		respondError(c, err, "failed to build demand series")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sku_id":               sku,
		"series":               series,
		"average_daily_demand": simulation.AverageDailyDemand(series),
	})
}

func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}
	rep, err := h.service.Run(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "simulation failed")
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *SimulationHandler) ExportSimulation(c *gin.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}
	rep, err := h.service.Run(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "simulation failed")
		return
	}

	var buf bytes.Buffer
	if err := report.WriteSimulationXLSX(&buf, rep); err != nil {
		respondError(c, err, "failed to render workbook")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(rep)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *SimulationHandler) compare(c *gin.Context) ([]domain.ScenarioResult, bool) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return nil, false
	}
	base, err := req.Base.params()
	if err != nil {
		respondError(c, err, "invalid base request")
		return nil, false
	}
	results, err := h.service.Compare(c.Request.Context(), base, req.Scenarios)
	if err != nil {
		respondError(c, err, "comparison failed")
		return nil, false
	}
	return results, true
}

func (h *SimulationHandler) CompareScenarios(c *gin.Context) {
	results, ok := h.compare(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *SimulationHandler) ExportComparison(c *gin.Context) {
	results, ok := h.compare(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteComparisonXLSX(&buf, results); err != nil {
		respondError(c, err, "failed to render workbook")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="scenario_comparison.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *SimulationHandler) GetRun(c *gin.Context) {
	rep, err := h.service.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch simulation run")
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *SimulationHandler) ListRuns(c *gin.Context) {
	limit := 50
	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil && v > 0 {
		limit = v
	}
	runs, err := h.service.ListRuns(c.Request.Context(), strings.TrimSpace(c.Query("sku")), limit)
	if err != nil {
		respondError(c, err, "failed to list simulation runs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (h *SimulationHandler) ReloadDataset(c *gin.Context) {
	if err := h.service.Reload(c.Request.Context()); err != nil {
		respondError(c, err, "failed to reload dataset")
		return
	}
	skus, err := h.service.ListSKUs(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch skus")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reloaded", "skus": len(skus)})
}
