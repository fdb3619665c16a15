package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"IPService/internal/pkg/config"
	"IPService/internal/resolver"
	"IPService/internal/utils/finder"

	"github.com/spf13/cobra"
)

// ipsCmd resolves once and prints the list like `hostname -I`
var ipsCmd = &cobra.Command{
	Use:   "ips",
	Short: "Print the host's IP addresses and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := finder.FindConfigFile(configPath, false)
		if err != nil {
			return err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		res := resolver.NewDefault(resolver.Config{
			ShowLoopback:    cfg.Resolver.ShowLocalhostIPs,
			StrategyTimeout: time.Duration(cfg.Resolver.StrategyTimeout) * time.Second,
		}, cfg.Resolver.ProbeAddress)

		resolution := res.Resolve(context.Background())
		if len(resolution.Addresses) == 0 {
			if err := resolution.Err(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			return fmt.Errorf("no IP addresses found")
		}

		fmt.Println(strings.Join(resolution.Addresses, " "))
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(ipsCmd)
}
