package cmd

import (
	"log/slog"
	"strings"

	"iidxbot/cmd/iidxbot/globals"
	"iidxbot/internal/db"
	"iidxbot/internal/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Applies the schema to the catalog and bot databases.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := globals.Get(cmd.Context()).Config

		sources := []string{cfg.CatalogDB}
		if cfg.BotDB != cfg.CatalogDB {
			sources = append(sources, cfg.BotDB)
		}
		for _, source := range sources {
			database, err := db.OpenMigrated(cmd.Context(), source)
			if err != nil {
				serviceutil.Fatal("migrate database", err)
			}
			database.Close()

			// libsql urls carry the auth token in the query
			name, _, _ := strings.Cut(source, "?")
			slog.Info("migrated", "source", name)
		}
	},
}
