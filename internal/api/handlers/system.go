package handlers

import (
	"net/http"
	"runtime"

	"IPService/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// Health always reports healthy while the process is serving
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.timestamp(),
		"app_name":  h.config.AppName,
		"version":   config.Version,
	})
}

// Metrics returns a fresh metrics snapshot. Provider failures appear in the
// snapshot's error field; the status stays 200.
func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": h.timestamp(),
		"metrics":   h.metrics.Collect(c.Request.Context()),
	})
}

// Config echoes the safe, non-secret configuration
func (h *Handler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app_name":           h.config.AppName,
		"version":            config.Version,
		"port":               h.config.Server.Port,
		"log_level":          h.config.Logs.Level,
		"cors_enabled":       h.config.API.CORS.Enabled,
		"show_localhost_ips": h.config.Resolver.ShowLocalhostIPs,
		"runtime_version":    runtime.Version(),
		"hostname":           h.hostName(),
	})
}

// All combines addresses, request summary, metrics and config in one body
func (h *Handler) All(c *gin.Context) {
	ctx := c.Request.Context()

	c.JSON(http.StatusOK, gin.H{
		"hostname":     h.hostName(),
		"ip_addresses": h.resolver.Resolve(ctx).Addresses,
		"request":      requestSummary(c.Request),
		"metrics":      h.metrics.Collect(ctx),
		"config": gin.H{
			"app_name": h.config.AppName,
			"version":  config.Version,
			"port":     h.config.Server.Port,
		},
		"timestamp": h.timestamp(),
		"version":   config.Version,
	})
}
