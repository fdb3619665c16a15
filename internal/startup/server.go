package startup

import (
	"IPService/internal/api/router"
	"IPService/internal/app"
	"IPService/internal/pkg/logger"
)

// StartServer builds the HTTP stack and serves it in the background
func StartServer(application *app.Application) *router.Builder {
	builder := router.NewBuilder(application.GetConfig(), application.Clock(), application.StartedAt()).
		WithAllRoutes()

	go func() {
		if err := builder.Start(); err != nil {
			logger.Fatal("HTTP server failed", logger.Err(err))
		}
	}()

	return builder
}
