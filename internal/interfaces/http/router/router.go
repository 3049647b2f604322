package router

import (
	"fmt"

	"github.com/compras/backend/internal/domain/bolsa"
	"github.com/compras/backend/internal/infrastructure/auth"
	"github.com/compras/backend/internal/infrastructure/config"
	"github.com/compras/backend/internal/infrastructure/logger"
	"github.com/compras/backend/internal/infrastructure/telemetry"
	"github.com/compras/backend/internal/interfaces/http/handler"
	"github.com/compras/backend/internal/interfaces/http/middleware"
	"github.com/compras/backend/internal/web"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Dependencies carries everything the router needs to wire routes.
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	Sessions    *auth.SessionService
	Revocations auth.RevocationList
	Metrics     *telemetry.MeterProvider
	Panel       *handler.PanelHandler
	PDF         *handler.PDFHandler
	Proveedores *handler.ProveedorHandler
	System      *handler.SystemHandler
}

// New builds the gin engine: templates, the middleware stack and all
// page and API routes.
//
// Middleware order: RequestID, Recovery, Logger, Secure, CORS,
// BodyLimit, RateLimit (config-gated), Session. The session middleware
// never rejects by itself; page handlers render the denial view and API
// groups add RequireSession.
func New(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
		}
	}

	tmpl, err := web.Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(logger.GinMiddleware(deps.Logger))
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
		deps.Logger.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	if deps.Metrics != nil && deps.Metrics.IsEnabled() {
		engine.Use(middleware.HTTPMetrics(deps.Metrics, cfg.Telemetry.ServiceName))
	}

	engine.Use(middleware.Session(deps.Sessions, deps.Revocations, cfg.Session.CookieName, deps.Logger))

	// Page routes render a view for every outcome, including denial.
	engine.GET("/", deps.Panel.Root)
	engine.GET("/inversion/:id", deps.Panel.Show(bolsa.TipoInversion))
	engine.GET("/presupuesto/:id", deps.Panel.Show(bolsa.TipoPresupuesto))
	engine.NoRoute(deps.Panel.NotFoundPage)

	engine.GET("/health", deps.System.Health)

	// JSON API routes require a resolved session.
	api := engine.Group("/api", middleware.RequireSession())
	{
		api.POST("/pdf/delete", deps.PDF.Delete)
		api.POST("/pdf/upload", deps.PDF.Upload)
		api.POST("/pdf/export", deps.PDF.Export)
		api.POST("/proveedor/view", deps.Proveedores.View)
		api.GET("/proveedor/buscar", deps.Proveedores.Buscar)
	}

	system := engine.Group("/api/v1/system")
	{
		system.GET("/ping", deps.System.Ping)
		system.GET("/info", deps.System.GetSystemInfo)
	}

	return engine, nil
}
