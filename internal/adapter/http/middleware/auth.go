package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"projecthub/internal/adapter/http/helper"
	"projecthub/internal/core/port"
)

const userIDKey = "x-user-id"

// JwtAuthMiddleware verifies the bearer access token and stores the
// authenticated user id on the gin context.
func JwtAuthMiddleware(tokens port.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			helper.SendUnauthorizedError(c, "Authorization header is required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			helper.SendUnauthorizedError(c, "Invalid authorization format")
			c.Abort()
			return
		}

		payload, err := tokens.VerifyAccessToken(bearer[len("Bearer "):])

		if err != nil {
			helper.SendUnauthorizedError(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(userIDKey, payload.UserID)
		c.Next()
	}
}

// CurrentUserID reads the user id stored by JwtAuthMiddleware.
func CurrentUserID(c *gin.Context) int {
	return c.GetInt(userIDKey)
}
