package bot

import (
	"context"
	"sync"

	"iidxbot/internal/catalog"
	"iidxbot/internal/chartquery"
	"iidxbot/internal/scrapers/iidxme"

	"golang.org/x/sync/errgroup"
)

const report_suggest = "suggest"

// SongQuery is the catalog part of a command: the parsed arguments and the
// songs they matched. Total counts matching songs before the result limit and
// Suggestion is a close title when nothing matched.
type SongQuery struct {
	Parsed     chartquery.ParsedQuery
	Total      int
	Songs      []catalog.Song
	Suggestion string
}

// TooMany reports whether some matching songs were left out.
func (q SongQuery) TooMany() bool {
	return q.Total > len(q.Songs)
}

func (b *Bot) querySongs(ctx context.Context, parsed chartquery.ParsedQuery, limit int) (SongQuery, error) {
	query := SongQuery{Parsed: parsed}

	total, err := b.catalog.Count(ctx, parsed.Filter, parsed.Keywords, parsed.ExactMatch)
	if err != nil {
		return SongQuery{}, err
	}
	query.Total = total

	if total == 0 {
		suggestion, err := b.catalog.Suggest(ctx, parsed.Filter.Mode, parsed.Keywords)
		if err != nil {
			b.tel.ReportWarning(report_suggest, err, parsed.Keywords)
		}
		query.Suggestion = suggestion
		return query, nil
	}

	songs, err := b.catalog.Fetch(ctx, parsed.Filter, parsed.Keywords, parsed.ExactMatch, limit)
	if err != nil {
		return SongQuery{}, err
	}
	query.Songs = songs
	return query, nil
}

// Player is one player's records on the songs of a query.
type Player struct {
	Username string
	Version  string
	Records  map[string]iidxme.PersonalBest
}

func (b *Bot) player(ctx context.Context, username string, songs []catalog.Song) (Player, error) {
	version, err := b.scraper.ResolveVersion(ctx, username)
	if err != nil {
		return Player{}, err
	}
	player := Player{Username: username, Version: version}
	if len(songs) == 0 {
		return player, nil
	}

	records, err := b.scraper.FetchPersonalBests(ctx, username, version, songs)
	if err != nil {
		return Player{}, err
	}
	player.Records = records
	return player, nil
}

type PBResult struct {
	SongQuery
	Player Player
}

// RunPB looks up a player's personal bests on the songs matching args.
func (b *Bot) RunPB(ctx context.Context, args string) (PBResult, error) {
	parsed, err := b.parser.Parse(args, 1)
	if err != nil {
		return PBResult{}, err
	}

	// the profile is checked first so an unknown player is reported even
	// when no song matches
	version, err := b.scraper.ResolveVersion(ctx, parsed.Usernames[0])
	if err != nil {
		return PBResult{}, err
	}

	query, err := b.querySongs(ctx, parsed, b.cfg.Commands.PB.ResultLimit)
	if err != nil {
		return PBResult{}, err
	}

	result := PBResult{
		SongQuery: query,
		Player:    Player{Username: parsed.Usernames[0], Version: version},
	}
	if len(query.Songs) == 0 {
		return result, nil
	}

	records, err := b.scraper.FetchPersonalBests(ctx, result.Player.Username, version, query.Songs)
	if err != nil {
		return PBResult{}, err
	}
	result.Player.Records = records
	return result, nil
}

type SRResult struct {
	SongQuery
}

// RunSR looks up the songs matching args for their score targets.
func (b *Bot) RunSR(ctx context.Context, args string) (SRResult, error) {
	parsed, err := b.parser.Parse(args, 0)
	if err != nil {
		return SRResult{}, err
	}
	query, err := b.querySongs(ctx, parsed, b.cfg.Commands.SR.ResultLimit)
	if err != nil {
		return SRResult{}, err
	}
	return SRResult{SongQuery: query}, nil
}

type VSResult struct {
	SongQuery
	Players [2]Player
}

// RunVS looks up the personal bests of two players on the songs matching
// args. Both players are scraped at the same time.
func (b *Bot) RunVS(ctx context.Context, args string) (VSResult, error) {
	parsed, err := b.parser.Parse(args, 2)
	if err != nil {
		return VSResult{}, err
	}

	query, err := b.querySongs(ctx, parsed, b.cfg.Commands.VS.ResultLimit)
	if err != nil {
		return VSResult{}, err
	}

	result := VSResult{SongQuery: query}
	var mutex sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	for i, username := range parsed.Usernames {
		group.Go(func() error {
			player, err := b.player(groupCtx, username, query.Songs)
			if err != nil {
				return err
			}
			mutex.Lock()
			defer mutex.Unlock()
			result.Players[i] = player
			return nil
		})
	}
	err = group.Wait()
	if err != nil {
		return VSResult{}, err
	}
	return result, nil
}
