package cmd

import (
	"fmt"
	"os"

	"IPService/internal/utils/daemon"

	"github.com/spf13/cobra"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the IP service",
	Run: func(cmd *cobra.Command, args []string) {
		pid, err := daemon.StopProcess(pidFile)
		if err != nil {
			fmt.Printf("Failed to stop IP service: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("IP service (PID: %d) has been stopped\n", pid)
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
