package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"iidxbot/cmd/iidxbot/globals"
	"iidxbot/internal/bot"
	"iidxbot/internal/config"
	"iidxbot/internal/serviceutil"
	"iidxbot/internal/telemetry"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the Discord bot until interrupted.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := globals.Get(cmd.Context()).Config
		if cfg.Token == "" {
			serviceutil.Fatal("read token", fmt.Errorf("set token in %s or %s", config.FileName, config.TokenEnv))
		}

		o, err := telemetry.SetupOtel(cmd.Context(), "iidxbot", cfg.Otlp)
		if err != nil {
			serviceutil.Fatal("setup otel", err)
		}
		defer o.Shutdown(context.Background())
		if o.MeterProvider != nil {
			telemetry.InstrumentPerfStats(cmd.Context(), time.Minute)
		}

		b, cleanup, err := newBot(cmd.Context(), cfg)
		if err != nil {
			serviceutil.Fatal("init bot", err)
		}
		defer cleanup()

		slog.Info("connecting to discord", "prefix", cfg.CommandPrefix, "iidx_channel", cfg.Server.IidxChannelID)
		err = bot.RunDiscord(cmd.Context(), cfg.Token, b)
		if err != nil {
			serviceutil.Fatal("run discord bot", err)
		}
	},
}
