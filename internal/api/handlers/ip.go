package handlers

import (
	"net/http"
	"strings"

	"IPService/internal/netinfo"
	"IPService/internal/pkg/config"
	"IPService/internal/pkg/logger"
	"IPService/internal/resolver"

	"github.com/gin-gonic/gin"
)

// noAddresses is the plain-text body when resolution found nothing
const noAddresses = "No IP addresses found"

// Index mirrors `hostname -I`: space-joined addresses and a newline
func (h *Handler) Index(c *gin.Context) {
	ips := h.resolver.Resolve(c.Request.Context()).Addresses

	body := noAddresses
	if len(ips) > 0 {
		body = strings.Join(ips, " ")
	}
	c.String(http.StatusOK, body+"\n")
}

// JSON returns the resolved addresses as JSON
func (h *Handler) JSON(c *gin.Context) {
	ips := h.resolver.Resolve(c.Request.Context()).Addresses

	c.JSON(http.StatusOK, gin.H{
		"hostname":     h.hostName(),
		"ip_addresses": ips,
		"count":        len(ips),
		"timestamp":    h.timestamp(),
		"version":      config.Version,
	})
}

// Interfaces returns the resolved list together with the per-interface table
// and the raw primary enumeration output.
func (h *Handler) Interfaces(c *gin.Context) {
	ctx := c.Request.Context()
	resolution := h.resolver.Resolve(ctx)

	table := map[string]netinfo.InterfaceInfo{}
	if h.interfaces != nil {
		collected, err := h.interfaces.Collect(ctx)
		if err != nil {
			logger.Debug("Interface detail unavailable", logger.Err(err))
		}
		if collected != nil {
			table = collected
		}
	}

	body := gin.H{
		"hostname":                  h.hostName(),
		"ip_addresses":              resolution.Addresses,
		"ip_count":                  len(resolution.Addresses),
		"interfaces":                table,
		"show_localhost_ips_config": h.config.Resolver.ShowLocalhostIPs,
		"timestamp":                 h.timestamp(),
		"version":                   config.Version,
	}
	if raw, ok := resolution.Raw(resolver.PrimaryStrategyName); ok {
		body["hostname_i_raw"] = raw
	}

	c.JSON(http.StatusOK, body)
}
