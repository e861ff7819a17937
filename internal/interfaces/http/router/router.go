package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appbilling "github.com/gymops/backend/internal/application/billing"
	appreport "github.com/gymops/backend/internal/application/report"
	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/infrastructure/auth"
	"github.com/gymops/backend/internal/infrastructure/config"
	"github.com/gymops/backend/internal/infrastructure/logger"
	"github.com/gymops/backend/internal/infrastructure/persistence"
	"github.com/gymops/backend/internal/interfaces/http/handler"
	"github.com/gymops/backend/internal/interfaces/http/middleware"
)

// Dependencies carries everything the router needs to wire the API
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *persistence.Database
	JWTService  *auth.JWTService
	Payments    *appbilling.PaymentService
	MonthLocks  *appbilling.MonthLockService
	Sales       *appbilling.ProductSaleService
	Revenue     *appreport.RevenueService
	Version     string
	RequireAuth bool
}

// New builds the gin engine with the full middleware chain and all routes
// registered under /api/v1
func New(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidations()

	r := gin.New()
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		_ = r.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(deps.Config.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = deps.Config.HTTP.CORSAllowOrigins
	}
	if len(deps.Config.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = deps.Config.HTTP.CORSAllowMethods
	}
	if len(deps.Config.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = deps.Config.HTTP.CORSAllowHeaders
	}

	r.Use(
		middleware.RequestID(),
		logger.Recovery(deps.Logger),
		logger.GinMiddleware(deps.Logger),
		middleware.CORSWithConfig(corsCfg),
		middleware.Secure(),
	)

	systemHandler := handler.NewSystemHandler(deps.DB, deps.Version, deps.Logger)
	systemHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	if deps.RequireAuth {
		api.Use(middleware.JWTAuth(middleware.JWTAuthConfig{
			JWTService: deps.JWTService,
			SkipPaths:  []string{"/health", "/api/v1/health"},
		}))
	}

	handler.NewPaymentHandler(deps.Payments, deps.Logger).RegisterRoutes(api)
	handler.NewMonthLockHandler(deps.MonthLocks, deps.Logger).RegisterRoutes(api)
	handler.NewProductSaleHandler(deps.Sales, deps.Logger).RegisterRoutes(api)
	handler.NewRevenueHandler(deps.Revenue, deps.Logger).RegisterRoutes(api)

	return r
}

// registerValidations adds the custom binding rules request DTOs use
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		return billing.PaymentMethod(fl.Field().String()).IsValid()
	})
}
