package handlers

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequestInfo echoes metadata about the incoming request
func (h *Handler) RequestInfo(c *gin.Context) {
	req := c.Request

	var contentType interface{}
	if ct := req.Header.Get("Content-Type"); ct != "" {
		contentType = ct
	}

	var contentLength interface{}
	if req.Header.Get("Content-Length") != "" && req.ContentLength >= 0 {
		contentLength = req.ContentLength
	}

	scheme := requestScheme(req)

	c.JSON(http.StatusOK, gin.H{
		"remote_addr":    remoteHost(req),
		"remote_port":    remotePort(req),
		"user_agent":     req.UserAgent(),
		"method":         req.Method,
		"path":           req.URL.Path,
		"url":            scheme + "://" + req.Host + req.URL.RequestURI(),
		"scheme":         scheme,
		"is_secure":      scheme == "https",
		"content_type":   contentType,
		"content_length": contentLength,
		"headers":        flattenHeaders(req),
		"timestamp":      h.timestamp(),
	})
}

// requestSummary is the abbreviated request block used by /all
func requestSummary(req *http.Request) gin.H {
	return gin.H{
		"remote_addr": remoteHost(req),
		"user_agent":  req.UserAgent(),
		"method":      req.Method,
	}
}

func requestScheme(req *http.Request) string {
	if req.TLS != nil {
		return "https"
	}
	return "http"
}

func remoteHost(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}

// remotePort returns nil when the peer port is unknown
func remotePort(req *http.Request) interface{} {
	_, port, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return nil
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return nil
	}
	return n
}

// flattenHeaders joins repeated headers with ", " and restores Host, which
// net/http moves out of the header map.
func flattenHeaders(req *http.Request) map[string]string {
	out := make(map[string]string, len(req.Header)+1)
	if req.Host != "" {
		out["Host"] = req.Host
	}
	for name, values := range req.Header {
		out[name] = strings.Join(values, ", ")
	}
	return out
}
