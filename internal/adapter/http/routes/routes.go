package routes

import (
	"projecthub/internal/adapter/http/handler"
	"projecthub/internal/adapter/http/middleware"
	"projecthub/internal/core/port"
	"projecthub/internal/core/telemetry"
	. "projecthub/pkg/config"
	"projecthub/pkg/logging"
	"projecthub/pkg/middlewares"

	"github.com/gin-gonic/gin"
)

type HandlersConfig struct {
	AuthHandler    *handler.AuthHandler
	ProjectHandler *handler.ProjectHandler
	TaskHandler    *handler.TaskHandler
	UserHandler    *handler.UserHandler

	Tokens port.TokenService
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *logging.Logger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *logging.Logger, config *AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middlewares.SetupGinMiddlewareWithConfig(router, "projecthub", metrics, logger, config)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	registerRoutes(router, handlers)

	return router
}

func registerRoutes(router *gin.Engine, handlers HandlersConfig) {
	if handlers.AuthHandler != nil {
		setupPublicRoutes(router, handlers.AuthHandler)
	}

	setupProtectedRoutes(router, handlers)
}

func setupPublicRoutes(router *gin.Engine, authHandler *handler.AuthHandler) {
	public := router.Group("/auth")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
		public.POST("/refresh", authHandler.Refresh)
	}
}

func setupProtectedRoutes(router *gin.Engine, handlers HandlersConfig) {
	protected := router.Group("/")
	protected.Use(middleware.CurrentMiddleware())
	protected.Use(middleware.JwtAuthMiddleware(handlers.Tokens))

	if handlers.AuthHandler != nil {
		protected.GET("/auth/me", handlers.AuthHandler.Me)
		protected.POST("/auth/logout", handlers.AuthHandler.Logout)
	}

	if handlers.ProjectHandler != nil {
		projects := protected.Group("/projects")
		{
			projects.POST("", handlers.ProjectHandler.Create)
			projects.GET("", handlers.ProjectHandler.List)
			projects.GET("/:id", handlers.ProjectHandler.GetByID)
			projects.PUT("/:id", handlers.ProjectHandler.Update)
			projects.DELETE("/:id", handlers.ProjectHandler.Delete)
			projects.GET("/:id/members", handlers.ProjectHandler.Members)
			projects.POST("/:id/members", handlers.ProjectHandler.AddMember)
			projects.DELETE("/:id/members", handlers.ProjectHandler.RemoveMember)
		}
	}

	if handlers.TaskHandler != nil {
		tasks := protected.Group("/tasks")
		{
			tasks.POST("", handlers.TaskHandler.Create)
			tasks.GET("", handlers.TaskHandler.List)
			tasks.GET("/:id", handlers.TaskHandler.GetByID)
			tasks.PUT("/:id", handlers.TaskHandler.Update)
			tasks.DELETE("/:id", handlers.TaskHandler.Delete)
			tasks.GET("/:id/assignees", handlers.TaskHandler.AssignedUsers)
			tasks.POST("/:id/assign", handlers.TaskHandler.AssignUser)
			tasks.POST("/:id/unassign", handlers.TaskHandler.UnassignUser)
		}
	}

	if handlers.UserHandler != nil {
		users := protected.Group("/users")
		{
			users.GET("", handlers.UserHandler.List)
			users.GET("/stats", handlers.UserHandler.Stats)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	registerRoutes(router, handlers)

	return router
}
