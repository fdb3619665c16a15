package router

import (
	"net/http"
	"strings"

	"IPService/internal/api/handlers"
	"IPService/internal/api/middleware"
	"IPService/internal/pkg/config"
	"IPService/internal/pkg/logger"
	"IPService/internal/telemetry"

	"github.com/gin-gonic/gin"
)

// Router encapsulates the HTTP router functionality
type Router struct {
	config    *config.Config
	engine    *gin.Engine
	handler   *handlers.Handler
	telemetry *telemetry.Telemetry
	stream    http.Handler
}

// New creates a router. tel and stream are optional; their routes are only
// registered when present.
func New(cfg *config.Config, deps handlers.Dependencies, tel *telemetry.Telemetry, stream http.Handler) *Router {
	if !strings.EqualFold(cfg.Logs.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	return &Router{
		config:    cfg,
		engine:    gin.New(),
		handler:   handlers.NewHandler(cfg, deps),
		telemetry: tel,
		stream:    stream,
	}
}

// Initialize sets up the router with middlewares and routes
func (r *Router) Initialize() *Router {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger())
	if r.telemetry != nil {
		r.engine.Use(middleware.Instrument(r.telemetry))
	}
	r.engine.Use(gin.CustomRecovery(r.handler.InternalError))
	if r.config.API.CORS.Enabled {
		r.engine.Use(middleware.CORS(r.config))
	}

	r.registerRoutes()
	r.engine.NoRoute(r.handler.NotFound)

	for _, route := range r.engine.Routes() {
		logger.Debug("Registered route",
			logger.String("method", route.Method),
			logger.String("path", route.Path))
	}

	return r
}

func (r *Router) registerRoutes() {
	h := r.handler

	r.engine.GET("/", h.Index)
	r.engine.GET("/json", h.JSON)
	r.engine.GET("/interfaces", h.Interfaces)
	r.engine.GET("/health", h.Health)
	r.engine.GET("/request-info", h.RequestInfo)
	r.engine.GET("/metrics", h.Metrics)
	r.engine.GET("/config", h.Config)
	r.engine.GET("/all", h.All)

	if r.telemetry != nil {
		r.engine.GET("/metrics/prometheus", gin.WrapH(r.telemetry.Handler()))
	}
	if r.stream != nil {
		r.engine.GET("/ws/metrics", gin.WrapH(r.stream))
	}
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}
