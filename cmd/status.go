package cmd

import (
	"fmt"

	"IPService/internal/utils/daemon"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the status of the IP service",
	Run: func(cmd *cobra.Command, args []string) {
		running, pid := daemon.GetStatus(pidFile)
		if running {
			fmt.Printf("IP service is running (PID: %d)\n", pid)
		} else {
			fmt.Println("IP service is not running")
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
