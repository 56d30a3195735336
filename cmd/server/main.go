package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appfinance "github.com/backoffice/backend/internal/application/finance"
	partnerapp "github.com/backoffice/backend/internal/application/partner"
	"github.com/backoffice/backend/internal/infrastructure/auth"
	"github.com/backoffice/backend/internal/infrastructure/cache"
	"github.com/backoffice/backend/internal/infrastructure/config"
	"github.com/backoffice/backend/internal/infrastructure/logger"
	"github.com/backoffice/backend/internal/infrastructure/notification"
	"github.com/backoffice/backend/internal/infrastructure/pdf"
	"github.com/backoffice/backend/internal/infrastructure/persistence"
	"github.com/backoffice/backend/internal/infrastructure/scheduler"
	"github.com/backoffice/backend/internal/interfaces/http/handler"
	"github.com/backoffice/backend/internal/interfaces/http/middleware"
	"github.com/backoffice/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run schema migration
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// Initialize repositories
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	taxRecordRepo := persistence.NewGormTaxRecordRepository(db.DB)
	whtRecordRepo := persistence.NewGormWHTRecordRepository(db.DB)
	taxReturnRepo := persistence.NewGormTaxReturnRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)

	// Initialize application services
	recalc := appfinance.NewClientTotalsRecalculator(invoiceRepo, clientRepo, log)
	invoiceService := appfinance.NewInvoiceService(invoiceRepo, taxRecordRepo, clientRepo, recalc, log)
	taxService := appfinance.NewTaxService(taxRecordRepo, log)
	whtService := appfinance.NewWHTService(whtRecordRepo, log)
	taxReturnService := appfinance.NewTaxReturnService(taxReturnRepo, log)
	expenseService := appfinance.NewExpenseService(expenseRepo, whtRecordRepo, log)
	clientService := partnerapp.NewClientService(clientRepo, log)

	// Sweep guard: Redis keeps multiple instances from double-running the
	// sweep. Fall back to the in-process guard when Redis is unreachable.
	var sweepGuard appfinance.SweepGuard
	redisGuard, err := cache.NewRedisSweepGuard(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory sweep guard", zap.Error(err))
		sweepGuard = cache.NewInMemorySweepGuard()
	} else {
		sweepGuard = redisGuard
	}

	// Overdue notice rendering and delivery
	noticeRenderer, err := pdf.NewChromedpNoticeRenderer(&pdf.Config{
		RenderTimeout: cfg.PDF.RenderTimeout,
		Logger:        log,
	})
	if err != nil {
		log.Fatal("Failed to initialize notice renderer", zap.Error(err))
	}
	defer noticeRenderer.Close()

	var notifier appfinance.Notifier
	if cfg.Notification.Enabled {
		notifier = notification.NewTwilioNotifier(cfg.Notification, log)
	} else {
		notifier = notification.NewLogNotifier(log)
	}

	sweepService := appfinance.NewOverdueSweepService(
		invoiceRepo, clientRepo, recalc, sweepGuard, noticeRenderer, notifier, log,
	)

	// Start the overdue sweep scheduler
	sweepScheduler := scheduler.NewSweepScheduler(sweepService, cfg.Scheduler, log)
	if err := sweepScheduler.Start(); err != nil {
		log.Fatal("Failed to start sweep scheduler", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sweepScheduler.Stop(stopCtx); err != nil {
			log.Error("Failed to stop sweep scheduler", zap.Error(err))
		}
	}()

	// JWT authentication
	jwtService := auth.NewJWTService(cfg.JWT)

	// Set gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	// Global middleware
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Liveness endpoint, outside the versioned API
	engine.GET("/health", healthHandler(db, log))

	jwtMiddlewareConfig := middleware.DefaultJWTConfig(jwtService)
	jwtMiddlewareConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtMiddlewareConfig))

	// Mount API routes
	router.New(engine).
		Register(handler.NewClientHandler(clientService)).
		Register(handler.NewInvoiceHandler(invoiceService)).
		Register(handler.NewTaxHandler(taxService)).
		Register(handler.NewWHTHandler(whtService)).
		Register(handler.NewTaxReturnHandler(taxReturnService)).
		Register(handler.NewExpenseHandler(expenseService)).
		Register(handler.NewSystemHandler(sweepScheduler)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down server", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shut down", zap.Error(err))
	}

	log.Info("Server exited")
}

// healthHandler reports liveness and database connectivity
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log.Error("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"reason": "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
