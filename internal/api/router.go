package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/agriconnect/portal/internal/api/handler"
	"github.com/agriconnect/portal/internal/api/middleware"
	"github.com/agriconnect/portal/internal/core/ports"
	"github.com/agriconnect/portal/internal/infrastructure/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb is nil when sessions live in process memory.
func NewRouter(
	svc ports.PortalService,
	backend ports.Backend,
	sessions ports.SessionStore,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	sessionManager := middleware.NewSessionManager(sessions, cfg.SessionSecret, cfg.SessionTTL, log)
	portalHandler := handler.NewPortalHandler(svc, log)

	// --- Portal views ---
	pages := e.Group("", sessionManager.Middleware())
	pages.GET("/", portalHandler.Root)
	pages.POST("/nav/:view", portalHandler.Navigate)
	pages.POST("/login", portalHandler.Login)
	pages.POST("/register", portalHandler.Register)
	pages.POST("/signout", portalHandler.SignOut)
	pages.POST("/chat/load", portalHandler.ChatLoad)
	pages.POST("/chat/send", portalHandler.ChatSend)
	pages.POST("/admin/refresh", portalHandler.AdminRefresh)
	pages.POST("/admin/toggle", portalHandler.AdminToggle)

	// --- Static assets ---
	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))

	// --- Health probes and metrics (no session required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(backend, rdb)

	e.GET("/health", healthHandler.Liveness)              // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)    // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
