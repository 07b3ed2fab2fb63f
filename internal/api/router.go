package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/yol1/scoring-system/docs"
	"github.com/yol1/scoring-system/internal/api/handler"
	"github.com/yol1/scoring-system/internal/api/middleware"
	"github.com/yol1/scoring-system/internal/core/domain"
	"github.com/yol1/scoring-system/internal/core/ports"
	"github.com/yol1/scoring-system/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	AuthService  ports.AuthService
	ScoreService ports.ScoreService
	Tokens       middleware.TokenParser
	Logger       zerolog.Logger

	// SeedEnabled mounts POST /api/scores_seed. Test environments only.
	SeedEnabled bool

	// HealthChecks are probed by GET /health/ready.
	HealthChecks map[string]handlers.Checker

	// Registerer and Gatherer back the HTTP metrics. Nil means the
	// Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.Secure())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "scoring",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	scoreHandler := handler.NewScoreHandler(deps.ScoreService)
	adminHandler := handler.NewAdminHandler()
	authenticate := middleware.Auth(deps.Tokens)

	// --- API routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/register", authHandler.Register)
	apiGroup.POST("/login", authHandler.Login)
	apiGroup.GET("/score", scoreHandler.Get, authenticate, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	apiGroup.GET("/admin/data", adminHandler.Data, authenticate, middleware.RBAC(domain.RoleAdmin))
	if deps.SeedEnabled {
		apiGroup.POST("/scores_seed", scoreHandler.Seed)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
