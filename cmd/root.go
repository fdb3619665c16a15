package cmd

import (
	"fmt"
	"os"

	"IPService/internal/startup"

	"github.com/spf13/cobra"
)

var (
	configPath string
	pidFile    string
)

// rootCmd serves in the foreground when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "ip-service",
	Short: "Report the host's IP addresses over HTTP",
	Long: `ip-service answers HTTP requests with the IPv4 addresses of the host it
runs on, the way "hostname -I" prints them, plus interface, request and
system diagnostics.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve(false)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	startup.SetupDefaultLogger()

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "conf/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&pidFile, "pid-file", "/var/run/ip-service.pid", "Path to the PID file")
}
