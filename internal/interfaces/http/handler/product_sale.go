package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appbilling "github.com/gymops/backend/internal/application/billing"
	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/interfaces/http/dto"
)

// ProductSaleHandler exposes product sales over HTTP
type ProductSaleHandler struct {
	BaseHandler
	service *appbilling.ProductSaleService
}

// NewProductSaleHandler creates a new product sale handler
func NewProductSaleHandler(service *appbilling.ProductSaleService, logger *zap.Logger) *ProductSaleHandler {
	return &ProductSaleHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers product sale routes on the given router group
func (h *ProductSaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/billing/product-sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.List)
		sales.GET("/:id", h.Get)
		sales.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /billing/product-sales
func (h *ProductSaleHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.requireIdentity(c)
	if !ok {
		return
	}

	var body dto.CreateProductSaleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sale, err := h.service.CreateSale(c.Request.Context(), appbilling.CreateProductSaleRequest{
		TenantID:      tenantID,
		BranchID:      body.BranchID,
		UserID:        userID,
		ProductID:     body.ProductID,
		ProductName:   body.ProductName,
		MemberID:      body.MemberID,
		Quantity:      body.Quantity,
		UnitPrice:     body.UnitPrice,
		PaymentMethod: billing.PaymentMethod(body.PaymentMethod),
		SoldAt:        body.SoldAt,
		Note:          body.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewProductSaleResponse(sale))
}

// Get handles GET /billing/product-sales/:id
func (h *ProductSaleHandler) Get(c *gin.Context) {
	tenantID, ok := h.requireTenant(c)
	if !ok {
		return
	}
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.service.GetSale(c.Request.Context(), tenantID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProductSaleResponse(sale))
}

// List handles GET /billing/product-sales
func (h *ProductSaleHandler) List(c *gin.Context) {
	tenantID, ok := h.requireTenant(c)
	if !ok {
		return
	}

	req := appbilling.ListProductSalesRequest{
		TenantID: tenantID,
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if v := c.Query("branch_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid branch_id")
			return
		}
		req.BranchID = &id
	}
	if v := c.Query("product_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid product_id")
			return
		}
		req.ProductID = &id
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

	page, err := h.service.ListSales(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewProductSaleResponseList(page.Items), page.Total, page.Page, page.PageSize)
}

// Delete handles DELETE /billing/product-sales/:id
func (h *ProductSaleHandler) Delete(c *gin.Context) {
	tenantID, userID, ok := h.requireIdentity(c)
	if !ok {
		return
	}
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.service.DeleteSale(c.Request.Context(), tenantID, userID, saleID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
