package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gymops/backend/internal/domain/shared"
	"github.com/gymops/backend/internal/interfaces/http/dto"
	"github.com/gymops/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides the response and identity helpers shared by all
// handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) getRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}

// getTenantID resolves the request's tenant scope. The JWT claims are
// authoritative; the X-Tenant-ID header is a development fallback that only
// applies when no token was presented.
func (h *BaseHandler) getTenantID(c *gin.Context) (uuid.UUID, bool) {
	if id, ok := middleware.GetJWTTenantID(c); ok {
		return id, true
	}
	if header := c.GetHeader("X-Tenant-ID"); header != "" {
		if id, err := uuid.Parse(header); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

// getUserID resolves the acting user, preferring JWT claims over the
// X-User-ID development header.
func (h *BaseHandler) getUserID(c *gin.Context) (uuid.UUID, bool) {
	if id, ok := middleware.GetJWTUserID(c); ok {
		return id, true
	}
	if header := c.GetHeader("X-User-ID"); header != "" {
		if id, err := uuid.Parse(header); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

// requireIdentity resolves tenant and user or aborts with 401
func (h *BaseHandler) requireIdentity(c *gin.Context) (tenantID, userID uuid.UUID, ok bool) {
	tenantID, ok = h.getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant scope is required")
		return uuid.Nil, uuid.Nil, false
	}
	userID, ok = h.getUserID(c)
	if !ok {
		h.Unauthorized(c, "User identity is required")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, userID, true
}

// requireTenant resolves the tenant scope or aborts with 401
func (h *BaseHandler) requireTenant(c *gin.Context) (uuid.UUID, bool) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Tenant scope is required")
		return uuid.Nil, false
	}
	return tenantID, true
}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, message, h.getRequestID(c)))
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, h.getRequestID(c)))
}

// HandleError maps an error to an HTTP response. Domain errors keep their
// code and message; everything else becomes an opaque 500 and is logged with
// the request ID.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := h.getRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID))
		return
	}

	h.logger.Error("unhandled error",
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An internal error occurred", requestID))
}
