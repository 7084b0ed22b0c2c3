// Package catalog reads songs and charts from the local song database.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"iidxbot/internal/apperr"
	"iidxbot/internal/assert"
	"iidxbot/internal/chartquery"
	"iidxbot/internal/db"
	"iidxbot/internal/telemetry"
)

const (
	report_db_query          = "db.query"
	report_store_fold_script = "store.fold-script"
)

// Chart is one playable difficulty of a song. Level and Notes are -1 while
// they are not announced yet.
type Chart struct {
	ID         string
	Difficulty chartquery.Difficulty
	Level      int
	Notes      int
}

// Song is a song with the charts that matched a query, in difficulty order.
type Song struct {
	ID     string
	Title  string
	Charts []Chart
}

// Store queries the catalog tables.
type Store struct {
	db  db.DBTX
	tel telemetry.API
}

func NewStore(database db.DBTX, tel telemetry.API) Store {
	assert.NotNil(database)
	assert.NotNil(tel)

	return Store{
		db:  database,
		tel: telemetry.NewScopedAPI("catalog", tel),
	}
}

// ScriptVariant returns the kanji form of a traditional chinese character, or
// an empty string when there is none.
func (s Store) ScriptVariant(ctx context.Context, char string) (string, error) {
	var jp string
	err := s.db.QueryRowContext(
		ctx,
		"SELECT jp FROM mapping_kanji WHERE zh_hk = ?",
		char,
	).Scan(&jp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return jp, nil
}

func (s Store) predicate(ctx context.Context, filter chartquery.ChartFilter, pattern string, exact bool) (predicate, error) {
	folded, err := chartquery.FoldScript(ctx, pattern, s)
	if err != nil {
		s.tel.ReportBroken(report_store_fold_script, err, pattern)
		return predicate{}, fmt.Errorf("%w: look up script variants", apperr.ErrCatalog)
	}
	return buildPredicate(filter, pattern, folded, exact), nil
}

// Count returns the number of songs with at least one chart matching the filter and keywords.
func (s Store) Count(ctx context.Context, filter chartquery.ChartFilter, pattern string, exact bool) (int, error) {
	pred, err := s.predicate(ctx, filter, pattern, exact)
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(
		ctx,
		"SELECT COUNT(DISTINCT s.song_id) "+
			"FROM iidxme_song s JOIN iidxme_chart c ON s.song_id = c.song_id "+
			"WHERE "+pred.sql,
		pred.args...,
	).Scan(&count)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "Count")
		return 0, fmt.Errorf("%w: count matched songs", apperr.ErrCatalog)
	}
	return count, nil
}

const songOrder = "LENGTH(s.title), s.title, s.song_id"

const difficultyOrder = "CASE c.difficulty " +
	"WHEN 'B' THEN 0 WHEN 'N' THEN 1 WHEN 'H' THEN 2 WHEN 'A' THEN 3 WHEN 'L' THEN 4 " +
	"ELSE 5 END"

// Fetch returns at most limit songs matching the filter and keywords, shortest
// title first. The limit applies to songs, every matching chart of a returned
// song is included.
func (s Store) Fetch(ctx context.Context, filter chartquery.ChartFilter, pattern string, exact bool, limit int) ([]Song, error) {
	assert.Positive(limit)

	pred, err := s.predicate(ctx, filter, pattern, exact)
	if err != nil {
		return nil, err
	}

	var query strings.Builder
	query.WriteString("SELECT s.song_id, s.title, c.chart_id, c.difficulty, c.level, c.notes ")
	query.WriteString("FROM iidxme_song s JOIN iidxme_chart c ON s.song_id = c.song_id ")
	query.WriteString("JOIN ( ")
	query.WriteString("SELECT s.song_id AS song_id ")
	query.WriteString("FROM iidxme_song s JOIN iidxme_chart c ON s.song_id = c.song_id ")
	query.WriteString("WHERE " + pred.sql + " ")
	query.WriteString("GROUP BY s.song_id ")
	query.WriteString("ORDER BY " + songOrder + " ")
	query.WriteString("LIMIT ? ")
	query.WriteString(") resid ON s.song_id = resid.song_id ")
	query.WriteString("WHERE " + pred.sql + " ")
	query.WriteString("ORDER BY " + songOrder + ", " + difficultyOrder)

	args := make([]any, 0, len(pred.args)*2+1)
	args = append(args, pred.args...)
	args = append(args, limit)
	args = append(args, pred.args...)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "Fetch")
		return nil, fmt.Errorf("%w: fetch charts", apperr.ErrCatalog)
	}
	defer rows.Close()

	var result []row
	for rows.Next() {
		var r row
		var level, notes sql.NullInt64
		err := rows.Scan(&r.songID, &r.title, &r.chartID, &r.difficulty, &level, &notes)
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "Fetch.Scan")
			return nil, fmt.Errorf("%w: read charts", apperr.ErrCatalog)
		}
		r.level = nullableInt(level)
		r.notes = nullableInt(notes)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		s.tel.ReportBroken(report_db_query, err, "Fetch.Rows")
		return nil, fmt.Errorf("%w: read charts", apperr.ErrCatalog)
	}

	songs := groupSongs(result)
	s.tel.ReportDebug("fetched songs", len(songs), filter.String(), pattern)
	return songs, nil
}

func nullableInt(n sql.NullInt64) int {
	if !n.Valid {
		return -1
	}
	return int(n.Int64)
}

type row struct {
	songID     string
	title      string
	chartID    string
	difficulty string
	level      int
	notes      int
}

// groupSongs folds consecutive rows of the same song into one Song.
func groupSongs(rows []row) []Song {
	var songs []Song
	for _, r := range rows {
		if len(songs) == 0 || songs[len(songs)-1].ID != r.songID {
			songs = append(songs, Song{ID: r.songID, Title: r.title})
		}
		last := &songs[len(songs)-1]
		last.Charts = append(last.Charts, Chart{
			ID:         r.chartID,
			Difficulty: chartquery.Difficulty(r.difficulty),
			Level:      r.level,
			Notes:      r.notes,
		})
	}
	return songs
}
