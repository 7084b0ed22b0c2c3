package chartquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"iidxbot/internal/apperr"
)

// PercentageFlag asks for the score rate instead of the rank delta.
const PercentageFlag = "-%"

// ParsedQuery is the parsed form of the argument string of a chart command:
//
//	<optional flag: -%> <usernames (0..n)> <optional filter: mode|difficulty|level> <song title keywords>
//
// e.g. `song title`, `userA dp10 "exact song title"`, `-% userA song title`,
// `userA userB spa12 "exact song title"`.
type ParsedQuery struct {
	Usernames []string
	Filter    ChartFilter
	// Keywords is already normalized into a LIKE pattern unless ExactMatch is set.
	Keywords       string
	ExactMatch     bool
	ShowPercentage bool
}

// Messages are the texts of the ArgumentErrors a Parser returns.
type Messages struct {
	EmptyKeyword    string
	MissingArgs     string
	InvalidUsername string
}

// DefaultMessages are used by Parse.
var DefaultMessages = Messages{
	EmptyKeyword:    "Please enter the song title keywords.",
	MissingArgs:     "Some arguments are missing, please check the command usage.",
	InvalidUsername: "The username should start with a letter or a number and contain no spaces.",
}

// Parser parses chart command arguments.
type Parser struct {
	Messages Messages
}

// Parse parses raw with the default messages.
func Parse(raw string, usernameCount int) (ParsedQuery, error) {
	return Parser{Messages: DefaultMessages}.Parse(raw, usernameCount)
}

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9]\S*$`)

// IsUsername reports whether s starts with a letter or a digit and contains no whitespace.
func IsUsername(s string) bool {
	return usernameRegex.MatchString(s)
}

// Parse splits raw on whitespace and reads, in order, the optional -% flag,
// exactly usernameCount usernames, an optional filter token and the keywords.
func (p Parser) Parse(raw string, usernameCount int) (ParsedQuery, error) {
	query := ParsedQuery{
		Usernames: []string{},
		Filter:    AllCharts,
	}

	args := strings.Fields(raw)
	if len(args) == 0 {
		if usernameCount == 0 {
			return ParsedQuery{}, apperr.Argument(p.Messages.EmptyKeyword)
		}
		return ParsedQuery{}, apperr.Argument(p.Messages.MissingArgs)
	}

	// the flag is optional, a lone "-%" is treated as keywords
	if len(args) > 1 && args[0] == PercentageFlag {
		query.ShowPercentage = true
		args = args[1:]
	}

	if len(args) < usernameCount+1 {
		return ParsedQuery{}, apperr.Argument(p.Messages.MissingArgs)
	}

	for i := 0; i < usernameCount; i++ {
		if !IsUsername(args[0]) {
			return ParsedQuery{}, apperr.Argument(p.Messages.InvalidUsername)
		}
		query.Usernames = append(query.Usernames, args[0])
		args = args[1:]
	}

	// a single remaining token is always the keywords, even when it looks
	// like a filter (a song titled "A" must stay searchable)
	if len(args) > 1 {
		filter, ok := ParseFilterToken(args[0])
		if ok {
			query.Filter = filter
			args = args[1:]
		}
	}

	keywords := strings.Join(args, " ")
	if inner, quoted := unquote(keywords); quoted {
		if strings.TrimSpace(inner) == "" {
			return ParsedQuery{}, apperr.Argument(p.Messages.EmptyKeyword)
		}
		keywords = inner
		query.ExactMatch = true
	}

	query.Keywords = NormalizeKeywords(keywords, query.ExactMatch)
	return query, nil
}

func isDoubleQuote(r rune) bool {
	return r == '"' || r == '“' || r == '”'
}

// unquote strips a pair of enclosing double quotes. Curly quotes count as
// straight ones.
func unquote(s string) (string, bool) {
	if utf8.RuneCountInString(s) < 2 {
		return s, false
	}
	first, firstSize := utf8.DecodeRuneInString(s)
	last, lastSize := utf8.DecodeLastRuneInString(s)
	if !isDoubleQuote(first) || !isDoubleQuote(last) {
		return s, false
	}
	return s[firstSize : len(s)-lastSize], true
}
