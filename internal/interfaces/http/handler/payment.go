package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appbilling "github.com/gymops/backend/internal/application/billing"
	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared/calendar"
	"github.com/gymops/backend/internal/interfaces/http/dto"
)

// PaymentHandler exposes the payment ledger over HTTP
type PaymentHandler struct {
	BaseHandler
	service *appbilling.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service *appbilling.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers payment routes on the given router group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/billing/payments")
	{
		payments.POST("", h.Create)
		payments.GET("", h.List)
		payments.GET("/:id", h.Get)
		payments.POST("/:id/correct", h.Correct)
		payments.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /billing/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.requireIdentity(c)
	if !ok {
		return
	}

	var body dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	paidOn, err := calendar.ParseDate(body.PaidOn)
	if err != nil {
		h.BadRequest(c, "paid_on must be a YYYY-MM-DD date")
		return
	}

	payment, err := h.service.CreatePayment(c.Request.Context(), appbilling.CreatePaymentRequest{
		TenantID:      tenantID,
		BranchID:      body.BranchID,
		UserID:        userID,
		MemberID:      body.MemberID,
		Amount:        body.Amount,
		PaidOn:        paidOn,
		PaymentMethod: billing.PaymentMethod(body.PaymentMethod),
		Note:          body.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewPaymentResponse(payment))
}

// Get handles GET /billing/payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	tenantID, ok := h.requireTenant(c)
	if !ok {
		return
	}
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.service.GetPayment(c.Request.Context(), tenantID, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewPaymentResponse(payment))
}

// List handles GET /billing/payments
func (h *PaymentHandler) List(c *gin.Context) {
	tenantID, ok := h.requireTenant(c)
	if !ok {
		return
	}

	req := appbilling.ListPaymentsRequest{
		TenantID:           tenantID,
		IncludeCorrections: c.Query("include_corrections") == "true",
		Page:               queryInt(c, "page", 1),
		PageSize:           queryInt(c, "page_size", 20),
	}
	if v := c.Query("branch_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid branch_id")
			return
		}
		req.BranchID = &id
	}
	if v := c.Query("member_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid member_id")
			return
		}
		req.MemberID = &id
	}
	if v := c.Query("payment_method"); v != "" {
		method := billing.PaymentMethod(v)
		req.PaymentMethod = &method
	}
	var err error
	if req.FromDate, err = dto.ParseOptionalDate(c.Query("from_date")); err != nil {
		h.BadRequest(c, "from_date must be a YYYY-MM-DD date")
		return
	}
	if req.ToDate, err = dto.ParseOptionalDate(c.Query("to_date")); err != nil {
		h.BadRequest(c, "to_date must be a YYYY-MM-DD date")
		return
	}

	page, err := h.service.ListPayments(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewPaymentResponseList(page.Items), page.Total, page.Page, page.PageSize)
}

// Correct handles POST /billing/payments/:id/correct
func (h *PaymentHandler) Correct(c *gin.Context) {
	tenantID, userID, ok := h.requireIdentity(c)
	if !ok {
		return
	}
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var body dto.CorrectPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	req := appbilling.CorrectPaymentRequest{
		TenantID:  tenantID,
		UserID:    userID,
		PaymentID: paymentID,
		Version:   body.Version,
		Amount:    body.Amount,
		Note:      body.Note,
		Reason:    body.Reason,
	}
	if body.PaidOn != nil {
		paidOn, err := calendar.ParseDate(*body.PaidOn)
		if err != nil {
			h.BadRequest(c, "paid_on must be a YYYY-MM-DD date")
			return
		}
		req.PaidOn = &paidOn
	}
	if body.PaymentMethod != nil {
		method := billing.PaymentMethod(*body.PaymentMethod)
		req.PaymentMethod = &method
	}

	result, err := h.service.CorrectPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.CorrectPaymentResponse{
		Payment: dto.NewPaymentResponse(result.Payment),
		Warning: result.Warning,
	})
}

// Delete handles DELETE /billing/payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	tenantID, userID, ok := h.requireIdentity(c)
	if !ok {
		return
	}
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.service.DeletePayment(c.Request.Context(), tenantID, userID, paymentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
