package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"iidxbot/internal/bot"
	"iidxbot/internal/botparam"
	"iidxbot/internal/catalog"
	"iidxbot/internal/config"
	"iidxbot/internal/db"
	"iidxbot/internal/scrapers/iidxme"
	"iidxbot/internal/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
)

// openDatabases opens the catalog and bot databases, once when they are the
// same source. The bot database is migrated.
func openDatabases(ctx context.Context, cfg config.Config) (catalogDB, botDB *sql.DB, err error) {
	botDB, err = db.OpenMigrated(ctx, cfg.BotDB)
	if err != nil {
		return nil, nil, fmt.Errorf("open bot db: %w", err)
	}
	if cfg.CatalogDB == cfg.BotDB {
		return botDB, botDB, nil
	}

	catalogDB, err = db.Open(cfg.CatalogDB)
	if err != nil {
		botDB.Close()
		return nil, nil, fmt.Errorf("open catalog db: %w", err)
	}
	return catalogDB, botDB, nil
}

// newBot wires the bot with its stores and scraper. cleanup releases the
// databases.
func newBot(ctx context.Context, cfg config.Config) (b *bot.Bot, cleanup func(), err error) {
	catalogDB, botDB, err := openDatabases(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup = func() {
		botDB.Close()
		if catalogDB != botDB {
			catalogDB.Close()
		}
	}

	tel := telemetry.SlogAPI{}
	scraper, err := iidxme.NewClient(cfg.Iidxme.Options(), tel)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("create iidx.me client: %w", err)
	}

	b = bot.New(
		cfg,
		catalog.NewStore(catalogDB, tel),
		scraper,
		botparam.NewStore(botDB, tel),
		tel,
	)
	return b, cleanup, nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
