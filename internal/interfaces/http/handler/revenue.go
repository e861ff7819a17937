package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appreport "github.com/gymops/backend/internal/application/report"
	"github.com/gymops/backend/internal/domain/shared/calendar"
)

// RevenueHandler exposes revenue reports over HTTP
type RevenueHandler struct {
	BaseHandler
	service *appreport.RevenueService
}

// NewRevenueHandler creates a new revenue handler
func NewRevenueHandler(service *appreport.RevenueService, logger *zap.Logger) *RevenueHandler {
	return &RevenueHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers revenue report routes on the given router group
func (h *RevenueHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports/revenue")
	{
		reports.GET("/monthly", h.Monthly)
		reports.GET("/trend", h.Trend)
		reports.GET("/daily", h.Daily)
		reports.GET("/methods", h.Methods)
	}
}

// Monthly handles GET /reports/revenue/monthly?branch_id=...&month=YYYY-MM
func (h *RevenueHandler) Monthly(c *gin.Context) {
	tenantID, ok := h.requireTenant(c)
	if !ok {
		return
	}
	branchID, month, ok := h.branchAndMonth(c)
	if !ok {
		return
	}

	report, err := h.service.MonthlyRevenue(c.Request.Context(), appreport.MonthlyRevenueRequest{
		TenantID: tenantID,
		BranchID: branchID,
		Month:    month,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Trend handles GET /reports/revenue/trend?branch_id=...&months=N&end_month=YYYY-MM
func (h *RevenueHandler) Trend(c *gin.Context) {
	tenantID, ok := h.requireTenant(c)
	if !ok {
		return
	}
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.BadRequest(c, "branch_id is required")
		return
	}

	req := appreport.TrendRequest{
		TenantID: tenantID,
		BranchID: branchID,
		Months:   queryInt(c, "months", 6),
	}
	if v := c.Query("end_month"); v != "" {
		end, err := calendar.ParseMonthKey(v)
		if err != nil {
			h.BadRequest(c, "end_month must be in YYYY-MM form")
			return
		}
		req.EndMonth = end
	}

	entries, err := h.service.Trend(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Daily handles GET /reports/revenue/daily?branch_id=...&month=YYYY-MM
func (h *RevenueHandler) Daily(c *gin.Context) {
	tenantID, ok := h.requireTenant(c)
	if !ok {
		return
	}
	branchID, month, ok := h.branchAndMonth(c)
	if !ok {
		return
	}

	entries, err := h.service.DailyBreakdown(c.Request.Context(), appreport.DailyBreakdownRequest{
		TenantID: tenantID,
		BranchID: branchID,
		Month:    month,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Methods handles GET /reports/revenue/methods?branch_id=...&month=YYYY-MM
func (h *RevenueHandler) Methods(c *gin.Context) {
	tenantID, ok := h.requireTenant(c)
	if !ok {
		return
	}
	branchID, month, ok := h.branchAndMonth(c)
	if !ok {
		return
	}

	entries, err := h.service.MethodBreakdown(c.Request.Context(), appreport.MethodBreakdownRequest{
		TenantID: tenantID,
		BranchID: branchID,
		Month:    month,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

func (h *RevenueHandler) branchAndMonth(c *gin.Context) (uuid.UUID, calendar.MonthKey, bool) {
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.BadRequest(c, "branch_id is required")
		return uuid.Nil, calendar.MonthKey{}, false
	}
	month, err := calendar.ParseMonthKey(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "month must be in YYYY-MM form")
		return uuid.Nil, calendar.MonthKey{}, false
	}
	return branchID, month, true
}
