package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/donelist/task-service/internal/api/handler"
	"github.com/donelist/task-service/internal/api/middleware"
	"github.com/donelist/task-service/internal/core/ports"
	"github.com/donelist/task-service/internal/core/service"
	mongodb "github.com/donelist/task-service/internal/infrastructure/db/mongo"
	redisdb "github.com/donelist/task-service/internal/infrastructure/db/redis"
	healthhandlers "github.com/donelist/task-service/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The token service and activity recorder are constructed by the caller so
// their lifecycles (shared secret, worker pool) stay owned by main.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	tokens *service.TokenService,
	recorder ports.ActivityRecorder,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskservice"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	cache := redisdb.NewTaskCache(rdb)

	userService := service.NewUserService(userRepo, tokens, log)
	taskService := service.NewTaskService(taskRepo, activityRepo, recorder, cache, log)

	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)
	authMiddleware := middleware.Auth(tokens)

	// --- Public routes ---
	e.GET("/", welcome)
	e.POST("/v1/users/register", userHandler.Register)
	e.POST("/v1/users/login", userHandler.Login)

	// --- Owner-scoped routes ---
	todos := e.Group("/v1/todos", authMiddleware)
	todos.POST("", taskHandler.Create)
	todos.GET("", taskHandler.List)
	todos.GET("/:id", taskHandler.Get)
	todos.PATCH("/:id", taskHandler.Update)
	todos.DELETE("/:id", taskHandler.Delete)
	todos.GET("/:id/activity", taskHandler.Activity)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	readinessHandler := healthhandlers.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

func welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "task-service",
		"message": "welcome",
	})
}
