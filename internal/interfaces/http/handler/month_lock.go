package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appbilling "github.com/gymops/backend/internal/application/billing"
	"github.com/gymops/backend/internal/domain/shared/calendar"
	"github.com/gymops/backend/internal/interfaces/http/dto"
)

// MonthLockHandler exposes revenue month locks over HTTP
type MonthLockHandler struct {
	BaseHandler
	service *appbilling.MonthLockService
}

// NewMonthLockHandler creates a new month lock handler
func NewMonthLockHandler(service *appbilling.MonthLockService, logger *zap.Logger) *MonthLockHandler {
	return &MonthLockHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers month lock routes on the given router group
func (h *MonthLockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	locks := rg.Group("/billing/month-locks")
	{
		locks.POST("", h.Lock)
		locks.DELETE("", h.Unlock)
		locks.GET("", h.List)
		locks.GET("/status", h.Status)
	}
}

// Lock handles POST /billing/month-locks. Locking an already-locked month
// succeeds and returns the existing lock.
func (h *MonthLockHandler) Lock(c *gin.Context) {
	tenantID, userID, ok := h.requireIdentity(c)
	if !ok {
		return
	}

	var body dto.MonthLockRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	month, err := calendar.ParseMonthKey(body.Month)
	if err != nil {
		h.BadRequest(c, "month must be in YYYY-MM form")
		return
	}

	lock, err := h.service.Lock(c.Request.Context(), tenantID, body.BranchID, userID, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewMonthLockResponse(lock))
}

// Unlock handles DELETE /billing/month-locks?branch_id=...&month=YYYY-MM
func (h *MonthLockHandler) Unlock(c *gin.Context) {
	tenantID, userID, ok := h.requireIdentity(c)
	if !ok {
		return
	}
	branchID, month, ok := h.branchAndMonth(c)
	if !ok {
		return
	}

	if err := h.service.Unlock(c.Request.Context(), tenantID, branchID, userID, month); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Status handles GET /billing/month-locks/status?branch_id=...&month=YYYY-MM
func (h *MonthLockHandler) Status(c *gin.Context) {
	tenantID, ok := h.requireTenant(c)
	if !ok {
		return
	}
	branchID, month, ok := h.branchAndMonth(c)
	if !ok {
		return
	}

	locked, err := h.service.IsLocked(c.Request.Context(), tenantID, branchID, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MonthLockStatusResponse{
		BranchID: branchID,
		Month:    month.String(),
		Locked:   locked,
	})
}

// List handles GET /billing/month-locks?branch_id=...
func (h *MonthLockHandler) List(c *gin.Context) {
	tenantID, ok := h.requireTenant(c)
	if !ok {
		return
	}
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.BadRequest(c, "branch_id is required")
		return
	}

	locks, err := h.service.ListLocks(c.Request.Context(), tenantID, branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewMonthLockResponseList(locks))
}

func (h *MonthLockHandler) branchAndMonth(c *gin.Context) (uuid.UUID, calendar.MonthKey, bool) {
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
