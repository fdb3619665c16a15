package middleware

import (
	"time"

	"IPService/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Logger logs every request once it has been served
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Upgraded websocket connections are logged by the hub
		if c.Request.Header.Get("Upgrade") == "websocket" {
			return
		}

		logger.Info("HTTP Request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("latency", time.Since(start)),
			logger.String("request_id", c.GetString(RequestIDKey)),
		)
	}
}
