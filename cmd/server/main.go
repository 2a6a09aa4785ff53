package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/scart/backend/internal/application/catalog"
	identityapp "github.com/scart/backend/internal/application/identity"
	partnerapp "github.com/scart/backend/internal/application/partner"
	tradeapp "github.com/scart/backend/internal/application/trade"
	"github.com/scart/backend/internal/infrastructure/auth"
	"github.com/scart/backend/internal/infrastructure/config"
	"github.com/scart/backend/internal/infrastructure/logger"
	"github.com/scart/backend/internal/infrastructure/notification"
	"github.com/scart/backend/internal/infrastructure/persistence"
	"github.com/scart/backend/internal/interfaces/http/handler"
	"github.com/scart/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	creditRepo := persistence.NewGormCustomerCreditRepository(db.DB)
	approvalLogRepo := persistence.NewGormApprovalLogRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)
	logicConfigRepo := persistence.NewGormLogicConfigRepository(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	passwordHasher := auth.NewPasswordHasher()
	notifier := notification.New(cfg.Notification, log)

	// Application services
	authService := identityapp.NewAuthService(userRepo, passwordHasher, jwtService)
	customerService := partnerapp.NewCustomerService(db.DB, customerRepo, creditRepo, quotationRepo)
	approvalService := partnerapp.NewCustomerApprovalService(db.DB, customerRepo, userRepo, approvalLogRepo, notifier, log)
	productService := catalogapp.NewProductService(productRepo)
	quotationService := tradeapp.NewQuotationService(quotationRepo, customerRepo, productRepo, logicConfigRepo)

	engine, err := router.New(cfg, log, jwtService, router.Handlers{
		System:    handler.NewSystemHandler(db, cfg.App.Name),
		Auth:      handler.NewAuthHandler(authService),
		Customer:  handler.NewCustomerHandler(customerService, approvalService),
		Product:   handler.NewProductHandler(productService),
		Quotation: handler.NewQuotationHandler(quotationService),
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()
	log.Info("Server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
