// Package bot answers chat commands with IIDX catalog and iidx.me data.
package bot

import (
	"context"
	"math/rand/v2"
	"time"

	"iidxbot/internal/assert"
	"iidxbot/internal/catalog"
	"iidxbot/internal/chartquery"
	"iidxbot/internal/config"
	"iidxbot/internal/scrapers/iidxme"
	"iidxbot/internal/telemetry"
)

type Catalog interface {
	Count(ctx context.Context, filter chartquery.ChartFilter, pattern string, exact bool) (int, error)
	Fetch(ctx context.Context, filter chartquery.ChartFilter, pattern string, exact bool, limit int) ([]catalog.Song, error)
	Suggest(ctx context.Context, mode chartquery.Mode, keywords string) (string, error)
}

type Scraper interface {
	ResolveVersion(ctx context.Context, username string) (string, error)
	FetchPersonalBests(ctx context.Context, username, version string, songs []catalog.Song) (map[string]iidxme.PersonalBest, error)
}

type Params interface {
	Get(ctx context.Context, module, key string) (string, error)
	Set(ctx context.Context, module, key, value string) error
	Swap(ctx context.Context, module, key, value string) (string, error)
	Volume(ctx context.Context) (int, error)
	SetVolume(ctx context.Context, volume int) error
}

type Bot struct {
	cfg     config.Config
	catalog Catalog
	scraper Scraper
	params  Params
	parser  chartquery.Parser
	tel     telemetry.API

	// intn returns a random number in [0, n).
	intn func(n int) int
}

func New(cfg config.Config, catalog Catalog, scraper Scraper, params Params, tel telemetry.API) *Bot {
	assert.NotNil(catalog)
	assert.NotNil(scraper)
	assert.NotNil(params)
	assert.NotNil(tel)

	return &Bot{
		cfg:     cfg,
		catalog: catalog,
		scraper: scraper,
		params:  params,
		parser:  chartquery.Parser{Messages: cfg.Messages.ParserMessages()},
		tel:     telemetry.NewScopedAPI("bot", tel),
		intn:    rand.IntN,
	}
}

// commandContext bounds a whole command invocation.
func (b *Bot) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(b.cfg.CommandTimeoutSeconds)*time.Second)
}
