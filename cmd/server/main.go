package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	analyticsapp "github.com/invoicedash/backend/internal/application/analytics"
	invoiceapp "github.com/invoicedash/backend/internal/application/invoice"
	"github.com/invoicedash/backend/internal/infrastructure/cache"
	"github.com/invoicedash/backend/internal/infrastructure/config"
	"github.com/invoicedash/backend/internal/infrastructure/logger"
	"github.com/invoicedash/backend/internal/infrastructure/persistence"
	"github.com/invoicedash/backend/internal/infrastructure/storage"
	"github.com/invoicedash/backend/internal/interfaces/http/handler"
	"github.com/invoicedash/backend/internal/interfaces/http/middleware"
	"github.com/invoicedash/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting Invoice Dashboard Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Invoice repository doubles as the analytics snapshot reader
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)

	// Document storage: presigned URLs via S3-compatible storage, or a
	// stub when no bucket is configured
	var docStorage invoiceapp.DocumentStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3DocumentStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize document storage", zap.Error(err))
		}

		ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ensureCtx); err != nil {
			log.Warn("Could not ensure storage bucket exists", zap.Error(err))
		}
		cancel()

		docStorage = s3Storage
		log.Info("Document storage initialized", zap.String("bucket", s3Storage.GetBucket()))
	} else {
		docStorage = storage.NewStubDocumentStorage()
		log.Warn("No storage bucket configured, using stub document storage")
	}

	// Dashboard cache: Redis when enabled, in-memory otherwise
	var dashCache analyticsapp.DashboardCache
	if cfg.Redis.Enabled {
		factory := cache.NewDashboardCacheFactory(cfg.Redis, cache.WithLogger(log))
		dashCache, err = factory.CreateCache()
		if err != nil {
			log.Fatal("Failed to initialize dashboard cache", zap.Error(err))
		}
	} else {
		dashCache = cache.NewInMemoryDashboardCache()
	}

	// Application services
	invoiceService := invoiceapp.NewService(invoiceRepo, docStorage, invoiceapp.ServiceConfig{
		UploadURLExpiry:   cfg.Storage.PresignExpiration,
		DownloadURLExpiry: time.Hour,
	})
	dashboardService := analyticsapp.NewDashboardService(invoiceRepo, dashCache, log,
		analyticsapp.WithCacheTTL(cfg.Analytics.CacheTTL),
		analyticsapp.WithWindowDefaults(cfg.Analytics.WindowMonths, cfg.Analytics.TopClients),
	)

	// Handlers
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	analyticsHandler := handler.NewAnalyticsHandler(dashboardService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Liveness and readiness endpoints outside the versioned API
	engine.GET("/healthz", systemHandler.Health)
	engine.GET("/readyz", systemHandler.Ready)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	invoiceRoutes := router.NewDomainGroup("invoice", "/invoices")
	invoiceRoutes.POST("", invoiceHandler.Create)
	invoiceRoutes.GET("", invoiceHandler.List)
	invoiceRoutes.GET("/search", invoiceHandler.Search)
	invoiceRoutes.GET("/status/:status", invoiceHandler.ListByStatus)
	invoiceRoutes.GET("/date-range", invoiceHandler.ListByDateRange)
	invoiceRoutes.GET("/generate-invoice-number", invoiceHandler.GenerateNumber)
	invoiceRoutes.GET("/number/:number", invoiceHandler.GetByNumber)
	invoiceRoutes.GET("/:id", invoiceHandler.GetByID)
	invoiceRoutes.PUT("/:id", invoiceHandler.Update)
	invoiceRoutes.PATCH("/:id/status", invoiceHandler.UpdateStatus)
	invoiceRoutes.DELETE("/:id", invoiceHandler.Delete)
	invoiceRoutes.POST("/:id/pdf", invoiceHandler.PrepareDocumentUpload)
	invoiceRoutes.GET("/:id/pdf", invoiceHandler.GetDocumentDownload)
	r.Register(invoiceRoutes)

	analyticsRoutes := router.NewDomainGroup("analytics", "/analytics")
	analyticsRoutes.GET("/dashboard", analyticsHandler.GetDashboard)
	r.Register(analyticsRoutes)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if closer, ok := dashCache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Error("Error closing dashboard cache", zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
