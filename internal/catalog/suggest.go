package catalog

import (
	"context"
	"fmt"
	"strings"

	"iidxbot/internal/apperr"
	"iidxbot/internal/chartquery"

	"github.com/antzucaro/matchr"
)

// minSuggestSimilarity is the lowest Jaro-Winkler similarity a title needs to
// be suggested.
const minSuggestSimilarity = 0.8

// Suggest returns the title in mode most similar to keywords, or an empty
// string when nothing is close enough. keywords may be a LIKE pattern.
func (s Store) Suggest(ctx context.Context, mode chartquery.Mode, keywords string) (string, error) {
	target := strings.ToLower(chartquery.DenormalizeKeywords(keywords))
	if strings.TrimSpace(target) == "" {
		return "", nil
	}

	rows, err := s.db.QueryContext(
		ctx,
		"SELECT s.title, IFNULL(s.title_alias, ''), IFNULL(s.title_romaji, '') "+
			"FROM iidxme_song s "+
			"WHERE EXISTS (SELECT 1 FROM iidxme_chart c WHERE c.song_id = s.song_id AND c.mode = ?)",
		string(mode),
	)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "Suggest")
		return "", fmt.Errorf("%w: list titles", apperr.ErrCatalog)
	}
	defer rows.Close()

	var best string
	var bestSimilarity float64
	for rows.Next() {
		var title, alias, romaji string
		err := rows.Scan(&title, &alias, &romaji)
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "Suggest.Scan")
			return "", fmt.Errorf("%w: list titles", apperr.ErrCatalog)
		}

		for _, candidate := range []string{title, alias, romaji} {
			if candidate == "" {
				continue
			}
			similarity := matchr.JaroWinkler(target, strings.ToLower(candidate), false)
			if similarity > bestSimilarity {
				bestSimilarity = similarity
				best = title
			}
		}
	}
	if err := rows.Err(); err != nil {
		s.tel.ReportBroken(report_db_query, err, "Suggest.Rows")
		return "", fmt.Errorf("%w: list titles", apperr.ErrCatalog)
	}

	if bestSimilarity < minSuggestSimilarity {
		return "", nil
	}
	return best, nil
}
