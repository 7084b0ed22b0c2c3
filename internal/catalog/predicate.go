package catalog

import (
	"strings"

	"iidxbot/internal/chartquery"
)

type predicate struct {
	sql  string
	args []any
}

const titleWithAlias = "s.title || ' ' || IFNULL(s.title_alias, '')"

// buildPredicate builds the WHERE clause shared by Count and Fetch. folded is
// pattern after script folding.
func buildPredicate(filter chartquery.ChartFilter, pattern, folded string, exact bool) predicate {
	var sb strings.Builder
	var args []any

	sb.WriteString("c.mode = ?")
	args = append(args, string(filter.Mode))

	if filter.HasDifficulty() {
		sb.WriteString(" AND c.difficulty = ?")
		args = append(args, string(filter.Difficulty))
	}
	if filter.HasLevel() {
		sb.WriteString(" AND c.level = ?")
		args = append(args, int(filter.Level))
	}

	if exact {
		trimmed := strings.TrimSpace(pattern)
		trimmedFolded := strings.TrimSpace(folded)

		sb.WriteString(" AND (")
		sb.WriteString("TRIM(s.title) = ?")
		sb.WriteString(" OR TRIM(s.title) = ?")
		sb.WriteString(" OR TRIM(IFNULL(s.title_alias, '')) = ?")
		sb.WriteString(" OR TRIM(IFNULL(s.title_alias, '')) = ?")
		sb.WriteString(" OR lower(TRIM(IFNULL(s.title_romaji, ''))) = lower(?)")
		sb.WriteString(")")
		args = append(args, trimmed, trimmedFolded, trimmed, trimmedFolded, trimmed)

		return predicate{sql: sb.String(), args: args}
	}

	sb.WriteString(" AND (")
	sb.WriteString(titleWithAlias + ` LIKE ? ESCAPE '\'`)
	sb.WriteString(" OR " + titleWithAlias + ` LIKE ? ESCAPE '\'`)
	// romaji titles only match on whole words
	sb.WriteString(" OR lower(s.title_romaji) = lower(?)")
	sb.WriteString(` OR lower(s.title_romaji) LIKE lower(?) ESCAPE '\'`)
	sb.WriteString(` OR lower(s.title_romaji) LIKE lower(?) ESCAPE '\'`)
	sb.WriteString(` OR lower(s.title_romaji) LIKE lower(?) ESCAPE '\'`)
	sb.WriteString(")")
	args = append(
		args,
		"%"+pattern+"%",
		"%"+folded+"%",
		pattern,
		pattern+" %",
		"% "+pattern,
		"% "+pattern+" %",
	)

	return predicate{sql: sb.String(), args: args}
}
