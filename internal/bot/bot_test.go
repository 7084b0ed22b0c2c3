package bot

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"iidxbot/internal/apperr"
	"iidxbot/internal/botparam"
	"iidxbot/internal/catalog"
	"iidxbot/internal/chartquery"
	"iidxbot/internal/config"
	"iidxbot/internal/db"
	"iidxbot/internal/scrapers/iidxme"
	"iidxbot/internal/telemetry"
)

type fakeCatalog struct {
	songs      []catalog.Song
	total      int
	suggestion string
	err        error

	calls       atomic.Int32
	lastFilter  chartquery.ChartFilter
	lastPattern string
	lastExact   bool
}

func (f *fakeCatalog) Count(_ context.Context, filter chartquery.ChartFilter, pattern string, exact bool) (int, error) {
	f.calls.Add(1)
	f.lastFilter = filter
	f.lastPattern = pattern
	f.lastExact = exact
	if f.err != nil {
		return 0, f.err
	}
	if f.total > 0 {
		return f.total, nil
	}
	return len(f.songs), nil
}

func (f *fakeCatalog) Fetch(_ context.Context, _ chartquery.ChartFilter, _ string, _ bool, limit int) ([]catalog.Song, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.songs) {
		return f.songs[:limit], nil
	}
	return f.songs, nil
}

func (f *fakeCatalog) Suggest(context.Context, chartquery.Mode, string) (string, error) {
	return f.suggestion, nil
}

type fakeScraper struct {
	versions map[string]string
	records  map[string]map[string]iidxme.PersonalBest
	panics   bool

	fetches atomic.Int32
}

func (f *fakeScraper) ResolveVersion(_ context.Context, username string) (string, error) {
	version, ok := f.versions[username]
	if !ok {
		return "", fmt.Errorf("%w: %s", apperr.ErrUserNotFound, username)
	}
	return version, nil
}

func (f *fakeScraper) FetchPersonalBests(_ context.Context, username, _ string, _ []catalog.Song) (map[string]iidxme.PersonalBest, error) {
	f.fetches.Add(1)
	if f.panics {
		panic("index out of range")
	}
	return f.records[username], nil
}

type fakeChannel struct {
	mu      sync.Mutex
	replies []Embed
	edits   []Embed
	sent    []string
	history []Message

	historyCalls int
}

func (f *fakeChannel) Reply(_ context.Context, _ Message, embed Embed) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, embed)
	return fmt.Sprintf("reply-%d", len(f.replies)), nil
}

func (f *fakeChannel) Edit(_ context.Context, _, messageID string, embed Embed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if messageID != fmt.Sprintf("reply-%d", len(f.replies)) {
		return fmt.Errorf("unknown message %s", messageID)
	}
	f.edits = append(f.edits, embed)
	return nil
}

func (f *fakeChannel) Send(_ context.Context, _, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeChannel) History(_ context.Context, _ string, limit int) ([]Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyCalls++
	if limit < len(f.history) {
		return f.history[:limit], nil
	}
	return f.history, nil
}

var quasar = catalog.Song{
	ID:    "25001",
	Title: "Quasar",
	Charts: []catalog.Chart{
		{ID: "25001-sph", Difficulty: chartquery.DifficultyHyper, Level: 10, Notes: 1000},
		{ID: "25001-spa", Difficulty: chartquery.DifficultyAnother, Level: 12, Notes: 1500},
	},
}

type fixture struct {
	bot     *Bot
	catalog *fakeCatalog
	scraper *fakeScraper
	params  botparam.Store
	tel     *telemetry.Recorder
}

func setupBot(t testing.TB) fixture {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	database, err := db.OpenMigrated(ctx, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.Default()
	cfg.Server.IidxChannelID = "iidx"
	cfg.Server.DanRoles = []config.DanRole{
		{Name: "9th dan", RoleID: "role-9"},
		{Name: "10th dan", RoleID: "role-10", Comment: "as expected of a 10th dan"},
	}

	cat := &fakeCatalog{songs: []catalog.Song{quasar}}
	scraper := &fakeScraper{
		versions: map[string]string{"player1": "c", "alice": "c", "bob": "30"},
		records: map[string]map[string]iidxme.PersonalBest{
			"player1": {
				"25001-sph": {Lamp: iidxme.LampFullCombo, Score: 1800, Version: "31", Rank: "AAA", RankDelta: "MAX-200", Rate: "90.00%", MissCount: 0},
				"25001-spa": {Lamp: iidxme.LampFullCombo, Score: 2700, Version: "31", Rank: "AAA", RankDelta: "MAX-300", Rate: "90.00%", MissCount: 2},
			},
			"alice": {
				"25001-sph": {Lamp: iidxme.LampFullCombo, Score: 1800, Version: "31", Rank: "AAA", MissCount: 0},
			},
			"bob": {
				"25001-sph": {Lamp: iidxme.LampHardClear, Score: 1700, Version: "30", Rank: "AA", MissCount: 8},
				"25001-spa": {Lamp: iidxme.LampClear, Score: 2000, Version: "30", Rank: "A", MissCount: 40},
			},
		},
	}
	tel := &telemetry.Recorder{}
	params := botparam.NewStore(database, tel)

	return fixture{
		bot:     New(cfg, cat, scraper, params, tel),
		catalog: cat,
		scraper: scraper,
		params:  params,
		tel:     tel,
	}
}

// sequence returns the given values in turn, as a stand-in for rand.IntN.
func sequence(values ...int) func(int) int {
	i := 0
	return func(n int) int {
		v := values[i%len(values)]
		i++
		return v % n
	}
}
