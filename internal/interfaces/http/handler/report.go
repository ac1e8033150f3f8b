package handler

import (
	"strconv"
	"time"

	appreport "github.com/gestock/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

const defaultReportDays = 30

// ReportHandler serves the read-only KPI and reporting endpoints
type ReportHandler struct {
	BaseHandler
	reports *appreport.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *appreport.DashboardService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Dashboard returns the full KPI view for a date range
// GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	dashboard, err := h.reports.Dashboard(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// SalesSummary returns the revenue aggregate for a date range
// GET /api/v1/reports/sales/summary
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	summary, err := h.reports.SalesSummary(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SalesByDay returns per-day revenue for a date range
// GET /api/v1/reports/sales/daily
func (h *ReportHandler) SalesByDay(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	daily, err := h.reports.SalesByDay(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, daily)
}

// TopProducts returns the best sellers for a date range
// GET /api/v1/reports/products/top
func (h *ReportHandler) TopProducts(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	products, err := h.reports.TopProducts(c.Request.Context(), start, end, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// StockAlerts returns the products at or under their alert threshold
// GET /api/v1/reports/stock/alerts
func (h *ReportHandler) StockAlerts(c *gin.Context) {
	alerts, err := h.reports.StockAlerts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}

// parseRange reads the start and end query parameters as calendar dates.
// The range is half-open, so the end day itself is included by pushing the
// bound to the following midnight. Without parameters the last 30 days are
// reported.
func (h *ReportHandler) parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	end := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	start := end.AddDate(0, 0, -defaultReportDays)

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid start parameter, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid end parameter, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		end = parsed.Add(24 * time.Hour)
	}
	if !end.After(start) {
		h.BadRequest(c, "end must not precede start")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// Register wires the reporting routes
func (h *ReportHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/reports/dashboard", h.Dashboard)
	authed.GET("/reports/sales/summary", h.SalesSummary)
	authed.GET("/reports/sales/daily", h.SalesByDay)
	authed.GET("/reports/products/top", h.TopProducts)
	authed.GET("/reports/stock/alerts", h.StockAlerts)
}
