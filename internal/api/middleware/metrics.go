package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver receives one observation per served request
type RequestObserver interface {
	ObserveRequest(route, method string, status int, elapsed time.Duration)
}

// Instrument reports the matched route template, never the raw path
func Instrument(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observer.ObserveRequest(c.FullPath(), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
