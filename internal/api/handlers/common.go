package handlers

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"IPService/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// NotFound handles unknown routes
func (h *Handler) NotFound(c *gin.Context) {
	logger.Warn("404 error", logger.String("path", c.Request.URL.Path))
	c.JSON(http.StatusNotFound, gin.H{
		"error":     "Not found",
		"path":      c.Request.URL.Path,
		"timestamp": h.timestamp(),
	})
}

// InternalError is the recovery handler for panics raised while serving.
// Only a sanitized message is logged and nothing internal reaches the caller.
func (h *Handler) InternalError(c *gin.Context, recovered interface{}) {
	logger.Error("500 error",
		logger.String("path", c.Request.URL.Path),
		logger.String("error", sanitize(recovered)))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":     "Internal server error",
		"timestamp": h.timestamp(),
	})
}

// maxLoggedPanicLen caps the logged panic message in bytes
const maxLoggedPanicLen = 200

// sanitize truncates on a rune boundary so the log field stays valid UTF-8
func sanitize(recovered interface{}) string {
	msg := fmt.Sprint(recovered)
	if len(msg) <= maxLoggedPanicLen {
		return msg
	}
	cut := maxLoggedPanicLen
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}
