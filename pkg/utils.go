package pkg

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

func GetServerPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}

	return "8080"
}

// GetClientIP resolves the originating client address, preferring the
// proxy headers over the socket peer.
func GetClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		// The first entry is the original client.
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	return "unknown"
}
