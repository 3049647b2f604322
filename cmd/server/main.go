package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/compras/backend/internal/application/archivo"
	"github.com/compras/backend/internal/application/cartera"
	appproveedor "github.com/compras/backend/internal/application/proveedor"
	"github.com/compras/backend/internal/infrastructure/auth"
	"github.com/compras/backend/internal/infrastructure/config"
	"github.com/compras/backend/internal/infrastructure/logger"
	"github.com/compras/backend/internal/infrastructure/persistence"
	"github.com/compras/backend/internal/infrastructure/printing"
	"github.com/compras/backend/internal/infrastructure/storage"
	"github.com/compras/backend/internal/infrastructure/telemetry"
	"github.com/compras/backend/internal/interfaces/http/handler"
	"github.com/compras/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
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
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting compras backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Continuous profiling (config-gated)
	profiler, err := telemetry.NewProfiler(cfg.Profiling, cfg.App.Name, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	// Distributed tracing (config-gated)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	if tracerProvider.IsEnabled() && profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// OTLP log shipping (config-gated): tee the otelzap bridge onto the
	// application logger so every entry also reaches the collector.
	loggerProvider, err := telemetry.NewLoggerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize OTLP logs", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := loggerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()
	if loggerProvider.IsEnabled() {
		otelCore := loggerProvider.ZapCore(cfg.Telemetry.ServiceName)
		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, otelCore)
		}))
	}

	// OTLP metrics (config-gated)
	meterProvider, err := telemetry.NewMeterProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize OTLP metrics", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Database with zap-backed GORM logging
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
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(cfg.Database.DBName); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Repositories
	bolsaRepo := persistence.NewGormBolsaRepository(db.DB)
	compraRepo := persistence.NewGormCompraRepository(db.DB)
	proveedorRepo := persistence.NewGormProveedorRepository(db.DB)

	// Uploaded-PDF store
	var store archivo.Store
	switch cfg.Storage.Backend {
	case "s3":
		store, err = storage.NewS3Store(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		log.Info("Using S3 storage", zap.String("bucket", cfg.Storage.Bucket))
	default:
		store, err = storage.NewLocalStore(cfg.Storage.UploadDir)
		if err != nil {
			log.Fatal("Failed to initialize local storage", zap.Error(err))
		}
		log.Info("Using local storage", zap.String("dir", cfg.Storage.UploadDir))
	}

	// PDF exporter (config-gated)
	exporter := printing.NewExporter(cfg.Export, log)
	defer func() {
		if err := exporter.Close(); err != nil {
			log.Error("Error closing exporter", zap.Error(err))
		}
	}()

	// Sessions and revocation list
	sessions := auth.NewSessionService(cfg.Session)
	revocations := auth.NewRevocationList(cfg.Redis, log)

	// Application services
	accessService := cartera.NewAccessService(bolsaRepo)
	dashboardService := cartera.NewDashboardService(accessService, bolsaRepo, compraRepo)
	proveedorService := appproveedor.NewService(proveedorRepo)
	archivoService := archivo.NewService(store, cfg.Storage.MaxUploadSize)

	// HTTP layer
	engine, err := router.New(router.Dependencies{
		Config:      cfg,
		Logger:      log,
		Sessions:    sessions,
		Revocations: revocations,
		Metrics:     meterProvider,
		Panel:       handler.NewPanelHandler(dashboardService, cfg.App.LandingPath, log),
		PDF:         handler.NewPDFHandler(archivoService, exporter, cfg.Session.CookieName, log),
		Proveedores: handler.NewProveedorHandler(proveedorService),
		System:      handler.NewSystemHandler(db, cfg.App.Name),
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

	log.Info("Server exited gracefully")
}
