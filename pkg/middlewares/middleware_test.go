package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"projecthub/pkg/config"
	"projecthub/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newMiddlewareTestRouter(t *testing.T, cfg *config.AppConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger, err := logging.NewLogger("middleware-test")
	assert.NoError(t, err)

	router := gin.New()
	SetupGinMiddlewareWithConfig(router, "middleware-test", nil, logger, cfg)

	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func TestSetupGinMiddleware_EnforceHTTPSRedirectsPlainTraffic(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.EnforceHTTPS = true
	cfg.RateLimitEnabled = false

	router := newMiddlewareTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/ping", nil)
	req.Header.Set("Host", "example.com")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://example.com/ping", rec.Header().Get("Location"))
}

func TestSetupGinMiddleware_EnforceHTTPSSkipsForwardedHTTPS(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.EnforceHTTPS = true
	cfg.RateLimitEnabled = false

	router := newMiddlewareTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/ping", nil)
	req.Header.Set("Host", "example.com")
	req.Header.Set("X-Forwarded-Proto", "https")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetupGinMiddleware_EnforceHTTPSDisabledServesPlainTraffic(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.EnforceHTTPS = false
	cfg.RateLimitEnabled = false

	router := newMiddlewareTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/ping", nil)
	req.Header.Set("Host", "example.com")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
