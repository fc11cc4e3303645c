package middlewares

import (
	"strconv"
	"time"

	"projecthub/internal/core/telemetry"
	. "projecthub/pkg/config"
	"projecthub/pkg/logging"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func MetricsMiddleware(metrics *telemetry.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
			duration,
		)
	}
}

func SetupGinMiddleware(router *gin.Engine, serviceName string, metrics *telemetry.AppMetrics, logger *logging.Logger) {
	SetupGinMiddlewareWithConfig(router, serviceName, metrics, logger, GetDefaultConfig())
}

func SetupGinMiddlewareWithConfig(router *gin.Engine, serviceName string, metrics *telemetry.AppMetrics, logger *logging.Logger, config *AppConfig) {
	httpsEnforcer := NewHTTPSEnforcer(logger.Zap())
	if config.EnforceHTTPS {
		httpsEnforcer.SetEnabled(true)
	}
	router.Use(httpsEnforcer.HTTPSMiddleware())

	router.Use(otelgin.Middleware(serviceName))

	router.Use(LoggingMiddleware(logger))

	if config.RateLimitEnabled {
		rateLimiter := NewRateLimiter(logger.Zap(), metrics)
		router.Use(rateLimiter.RateLimitMiddleware())
	}

	if metrics != nil {
		router.Use(MetricsMiddleware(metrics))
	}
}
