package middleware

import (
	"time"

	"IPService/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns permissive cross-origin headers; every origin is allowed
// unless allowed_origins is configured.
func CORS(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  cfg.API.CORS.AllowedMethods,
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(corsCfg.AllowMethods) == 0 {
		corsCfg.AllowMethods = []string{"GET", "HEAD", "OPTIONS"}
	}

	if origins := cfg.API.CORS.AllowedOrigins; len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	} else {
		corsCfg.AllowAllOrigins = true
	}

	return cors.New(corsCfg)
}
