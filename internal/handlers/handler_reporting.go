package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/dto"
	"github.com/SscSPs/budget_tracker/internal/middleware"
	"github.com/SscSPs/budget_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	location         *time.Location
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, loc *time.Location) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		location:         loc,
	}
}

// registerReportingRoutes registers routes related to reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, loc *time.Location) {
	h := newReportingHandler(reportingService, loc)

	reports := rg.Group("/reports")
	{
		reports.GET("/monthly-summary", h.getMonthlySummary)
		reports.GET("/capital", h.getCapital)
		reports.GET("/accounts", h.getAccountsAtDate)
	}
}

// asOfParam reads the optional date query parameter, defaulting to now.
func (h *reportingHandler) asOfParam(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), nil
	}
	return parseDateParam(raw, h.location)
}

// getMonthlySummary godoc
// @Summary Monthly income and expense summary
// @Description Totals for [first instant of the month, first instant of the next month) in the ledger time zone.
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param accountID query string false "Restrict to one account"
// @Param categoryID query string false "Restrict to one category"
// @Success 200 {object} dto.MonthlySummaryResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /reports/monthly-summary [get]
func (h *reportingHandler) getMonthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.MonthlySummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	summary, err := h.reportingService.MonthlySummary(c.Request.Context(),
		params.Year, time.Month(params.Month), params.AccountID, params.CategoryID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate monthly summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(summary))
}

// getCapital godoc
// @Summary Capital at a date
// @Description Assets minus credit liabilities, with transactions dated on or after the date removed.
// @Tags reports
// @Produce json
// @Param date query string false "RFC 3339 timestamp or YYYY-MM-DD, defaults to now"
// @Success 200 {object} dto.CapitalResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /reports/capital [get]
func (h *reportingHandler) getCapital(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	asOf, err := h.asOfParam(c)
	if err != nil {
		respondWithError(c, logger, err, "Invalid date")
		return
	}

	capital, err := h.reportingService.CapitalAtDate(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute capital")
		return
	}
	c.JSON(http.StatusOK, dto.CapitalResponse{
		AsOf:         asOf,
		CapitalCents: capital,
		Capital:      utils.CentsToDecimal(capital),
	})
}

// getAccountsAtDate godoc
// @Summary All accounts with their balance at a date
// @Tags reports
// @Produce json
// @Param date query string false "RFC 3339 timestamp or YYYY-MM-DD, defaults to now"
// @Success 200 {array} dto.AccountAtDateResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /reports/accounts [get]
func (h *reportingHandler) getAccountsAtDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	asOf, err := h.asOfParam(c)
	if err != nil {
		respondWithError(c, logger, err, "Invalid date")
		return
	}

	rows, err := h.reportingService.ListAccountsAtDate(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reconstruct account balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountsAtDateResponse(rows))
}
