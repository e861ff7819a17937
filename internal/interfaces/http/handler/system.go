package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gymops/backend/internal/infrastructure/persistence"
	"github.com/gymops/backend/internal/interfaces/http/dto"
)

// SystemHandler exposes health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	version string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *persistence.Database, version string, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(logger),
		db:          db,
		version:     version,
	}
}

// RegisterRoutes registers system routes on the given engine
func (h *SystemHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/v1/health", h.Health)
}

// Health handles GET /health. It reports degraded with a 503 when the
// database does not answer.
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK
	if err := h.db.Ping(); err != nil {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
		h.logger.Warn("health check database ping failed", zap.Error(err))
	}

	c.JSON(httpStatus, dto.NewSuccessResponse(gin.H{
		"status":  status,
		"version": h.version,
	}))
}
