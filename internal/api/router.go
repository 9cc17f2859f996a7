package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/housewarrior/housewarrior/docs"
	"github.com/housewarrior/housewarrior/internal/api/handler"
	"github.com/housewarrior/housewarrior/internal/api/middleware"
	"github.com/housewarrior/housewarrior/internal/core/domain"
	"github.com/housewarrior/housewarrior/internal/core/ports"
	"github.com/housewarrior/housewarrior/internal/core/service"
	"github.com/housewarrior/housewarrior/internal/infrastructure/config"
	redisdb "github.com/housewarrior/housewarrior/internal/infrastructure/db/redis"

	mongodb "github.com/housewarrior/housewarrior/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit publisher is constructed by the caller so its worker lifecycle is
// owned by main, not by the router.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditPublisher, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("housewarrior"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	profileCache := redisdb.NewProfileCache(rdb)
	authService := service.NewAuthService(userRepo, profileCache, audit, cfg.JWTSecret, cfg.JWTExpire, log)
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(authService)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.GET("/auth/me", profileHandler.Me, authMiddleware)
	apiGroup.GET("/housewives", profileHandler.Housewives, authMiddleware, middleware.RBAC(domain.RoleCustomer))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
