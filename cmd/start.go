package cmd

import (
	"fmt"
	"os"

	"IPService/internal/pkg/logger"
	"IPService/internal/startup"
	"IPService/internal/utils/daemon"
	"IPService/internal/utils/signal"

	"github.com/spf13/cobra"
)

var foreground bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the IP service",
	Long:  `Start the IP service in foreground or as a daemon.`,
	Run: func(cmd *cobra.Command, args []string) {
		if daemon.IsRunning(pidFile) {
			fmt.Printf("IP service is already running (PID file exists at %s)\n", pidFile)
			os.Exit(1)
		}

		if !foreground && !daemon.IsChild() {
			daemon.Daemonize(configPath, pidFile)
			return
		}

		serve(daemon.IsChild())
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (not as daemon)")
}

// serve runs the HTTP server until a termination signal. withPIDFile records
// the process in the PID file for stop and status.
func serve(withPIDFile bool) {
	application := startup.InitializeApplication(configPath)
	builder := startup.StartServer(application)

	if withPIDFile {
		if err := daemon.WritePIDFile(pidFile); err != nil {
			logger.Error("Failed to record PID", logger.Err(err))
		} else {
			signal.RegisterCleanupFunc(func() {
				daemon.RemovePIDFile(pidFile)
			})
		}
	}

	signal.HandleSignals(application, builder)
}
