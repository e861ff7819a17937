package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appbilling "github.com/gymops/backend/internal/application/billing"
	appreport "github.com/gymops/backend/internal/application/report"
	"github.com/gymops/backend/internal/domain/billing"
	"github.com/gymops/backend/internal/domain/shared/calendar"
	"github.com/gymops/backend/internal/domain/shared/valueobject"
	"github.com/gymops/backend/internal/infrastructure/auth"
	"github.com/gymops/backend/internal/infrastructure/config"
	"github.com/gymops/backend/internal/infrastructure/event"
	"github.com/gymops/backend/internal/infrastructure/logger"
	"github.com/gymops/backend/internal/infrastructure/persistence"
	"github.com/gymops/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()
	log.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	cal, err := calendar.New(cfg.Billing.DefaultTimezone)
	if err != nil {
		return err
	}

	maxAmount, err := decimal.NewFromString(cfg.Billing.MaxPaymentAmount)
	if err != nil {
		return errors.New("billing.max_payment_amount is not a valid decimal: " + cfg.Billing.MaxPaymentAmount)
	}
	policy := billing.PaymentPolicy{
		MaxAmount:     maxAmount,
		MaxNoteLength: cfg.Billing.MaxNoteLength,
		Currency:      valueobject.Currency(cfg.Billing.DefaultCurrency),
	}

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(appbilling.NewAuditLogHandler(log))

	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	monthLockRepo := persistence.NewGormMonthLockRepository(db.DB)
	productSaleRepo := persistence.NewGormProductSaleRepository(db.DB)
	revenueQueries := persistence.NewGormRevenueQueryRepository(db.DB)
	memberDirectory := persistence.NewGormMemberDirectory(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	paymentService := appbilling.NewPaymentService(
		paymentRepo, monthLockRepo, memberDirectory, txScope, eventBus,
		policy, cfg.Billing.CorrectionWarnAfterDays,
	)
	monthLockService := appbilling.NewMonthLockService(monthLockRepo, eventBus)
	productSaleService := appbilling.NewProductSaleService(
		productSaleRepo, monthLockRepo, txScope, eventBus, cal, policy,
	)
	revenueService := appreport.NewRevenueService(revenueQueries, monthLockRepo, cal)

	jwtService := auth.NewJWTService(cfg.JWT)

	engine := router.New(router.Dependencies{
		Config:      cfg,
		Logger:      log,
		DB:          db,
		JWTService:  jwtService,
		Payments:    paymentService,
		MonthLocks:  monthLockService,
		Sales:       productSaleService,
		Revenue:     revenueService,
		Version:     version,
		RequireAuth: cfg.JWT.Secret != "",
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("timezone", cfg.Billing.DefaultTimezone),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
