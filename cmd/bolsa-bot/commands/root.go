package commands

import (
	"context"
	"fmt"
	"os"

	"bolsa-bot/internal/components/telemetry"

	"github.com/spf13/cobra"
)

const serviceName = "bolsa-bot"

var (
	verbose    *bool
	configPath *string
)

var rootCmd = &cobra.Command{
	Use:   "bolsa-bot",
	Short: "bolsa-bot posts the IBOVESPA's daily change next to the latest denunciation headline.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug reports, including every http exchange.")
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The config file, a missing file is not an error.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
