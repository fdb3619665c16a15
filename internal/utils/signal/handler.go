package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"IPService/internal/api/router"
	"IPService/internal/app"
	"IPService/internal/pkg/logger"
)

// ShutdownTimeout bounds how long in-flight requests may drain
const ShutdownTimeout = 10 * time.Second

var (
	cleanupMu    sync.Mutex
	cleanupFuncs []func()
)

// RegisterCleanupFunc adds a function run once during graceful shutdown
func RegisterCleanupFunc(fn func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanupFuncs = append(cleanupFuncs, fn)
}

func runCleanup() {
	cleanupMu.Lock()
	funcs := cleanupFuncs
	cleanupFuncs = nil
	cleanupMu.Unlock()

	for i := len(funcs) - 1; i >= 0; i-- {
		funcs[i]()
	}
}

// HandleSignals blocks until SIGINT or SIGTERM, then shuts everything down
// and exits. SIGHUP is logged and ignored; configuration is read once at boot.
func HandleSignals(application *app.Application, builder *router.Builder) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for sig := range sigChan {
		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			logger.Info("Received termination signal, shutting down...",
				logger.String("signal", sig.String()))

			ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
			builder.Shutdown(ctx)
			cancel()

			runCleanup()
			application.Shutdown()
			os.Exit(0)
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP, configuration is only read at startup; restart to apply changes")
		}
	}
}
