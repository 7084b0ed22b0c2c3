package cmd

import (
	"fmt"
	"os"

	"iidxbot/cmd/iidxbot/globals"
	"iidxbot/internal/config"
	"iidxbot/internal/serviceutil"
	"iidxbot/internal/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "iidxbot",
	Short: "iidxbot answers beatmania IIDX score questions from iidx.me.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Log.Level = "debug"
		}

		cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{
			Config: cfg,
			Log:    telemetry.InitSlog(cfg.Log.Options()),
		}))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		globals.Get(cmd.Context()).Log.Close()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath, "config", "c", "",
		fmt.Sprintf("config file, %s is searched from the working directory upwards when unset", config.FileName),
	)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
}

func Execute() {
	ctx := serviceutil.SignalContext()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
