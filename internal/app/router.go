package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"dispatch/internal/auth"
	"dispatch/internal/handler"
	"dispatch/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler  *handler.UserHandler
	RiderHandler *handler.RiderHandler
	RideHandler  *handler.RideHandler
	AdminHandler *handler.AdminHandler
	Tokens       *auth.TokenManager
	RedisClient  *redis.Client
	Logger       *zap.Logger
	NewRelicApp  *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	authRequired := middleware.AuthMiddleware(deps.Tokens)

	// Health check and metrics.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// User routes.
	users := router.Group("/users")
	{
		users.POST("/register", deps.UserHandler.Register)
		users.POST("/login", deps.UserHandler.Login)
		users.GET("/me", authRequired, deps.UserHandler.Me)
	}

	// Rider routes.
	riders := router.Group("/riders")
	{
		riders.POST("/register", authRequired, deps.RiderHandler.Register)
		riders.GET("/:id", deps.RiderHandler.Get)
		riders.PATCH("/:id/status", deps.RiderHandler.SetStatus)
	}

	// Ride routes.
	rides := router.Group("/rides", authRequired)
	{
		rides.POST("/book", deps.RideHandler.Book)
		rides.PATCH("/:id/status", deps.RideHandler.SetStatus)
		rides.GET("/:id/status", deps.RideHandler.GetStatus)
	}

	// Admin routes.
	admin := router.Group("/admin", authRequired, middleware.AdminMiddleware())
	{
		admin.GET("/users", deps.AdminHandler.GetUsers)
		admin.GET("/riders", deps.AdminHandler.GetRiders)
		admin.GET("/rides", deps.AdminHandler.GetRides)
		admin.PATCH("/users/:id", deps.AdminHandler.UpdateUser)
	}

	return router
}
