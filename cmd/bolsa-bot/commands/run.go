package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bolsa-bot/internal/bot"
	"bolsa-bot/internal/components/telemetry"
	"bolsa-bot/internal/config"
	"bolsa-bot/internal/serviceutil"

	"github.com/spf13/cobra"
)

var dryRun *bool

func init() {
	dryRun = runCmd.Flags().Bool("dry-run", false, "Compose the headline and print it without posting.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:          "run [--dry-run] [--config <path/to/config.json5>]",
	Short:        "Scrapes the quote and news pages, composes a headline and posts it.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if *dryRun {
			msg, err := bot.Preview(cmd.Context(), bot.Options{})
			if err != nil {
				return err
			}
			fmt.Println(msg.String())
			return nil
		}

		cfg, err := config.Load(*configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		otel, err := telemetry.Setup(cmd.Context(), serviceName, cfg.Otlp)
		if err != nil {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
		// returning instead of exiting lets the exporters flush
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := otel.Shutdown(ctx)
			if err != nil {
				slog.Warn("failed to flush telemetry", "err", err)
			}
		}()

		result, err := bot.Run(cmd.Context(), cfg, bot.Options{})
		if err != nil {
			return fmt.Errorf("run %s: %w", result.RunID, err)
		}

		fmt.Println(result.Message.String())
		fmt.Println(result.Response.Status)
		fmt.Println(result.Response.Body)
		return nil
	},
}
