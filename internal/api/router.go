package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/repairshop/technotes-api/internal/api/handler"
	"github.com/repairshop/technotes-api/internal/api/middleware"
	"github.com/repairshop/technotes-api/internal/core/service"
	"github.com/repairshop/technotes-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/repairshop/technotes-api/internal/infrastructure/db/redis"
	"github.com/repairshop/technotes-api/internal/pkg/config"
)

// NewRouter assembles repositories, services, handlers and routes into a
// configured echo instance. It does not start the server.
func NewRouter(cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.Env)
	e.Validator = handler.NewValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	userRepo := postgres.NewUserRepository(db, log)
	noteRepo := postgres.NewNoteRepository(db, log)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	userService := service.NewUserService(userRepo, noteRepo, cfg.AllowDeleteWithNotes, log)
	noteService := service.NewNoteService(noteRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	noteHandler := handler.NewNoteHandler(noteService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	limiter := redisinfra.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)
	throttle := middleware.RateLimit(limiter, log)
	authGate := middleware.Auth(tokenService, userRepo)

	api := e.Group("/api")
	api.POST("/signup", authHandler.Signup, throttle)
	api.POST("/login", authHandler.Login, throttle)
	api.POST("/jwt", authHandler.VerifyToken)
	api.GET("/user", authHandler.Me, authGate)

	users := api.Group("/users", authGate)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("", userHandler.Update)
	users.DELETE("", userHandler.Delete)

	notes := api.Group("/techNotes", authGate)
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.PUT("", noteHandler.Update)
	notes.DELETE("", noteHandler.Delete)

	api.POST("/sync", noteHandler.Sync, authGate)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
