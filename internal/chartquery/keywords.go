package chartquery

import (
	"context"
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeKeywords turns keywords into a LIKE pattern. Literal '%' is escaped
// with '\' and every run of whitespace becomes a single '%' so "a b" also
// matches "a-b" or "a  b". Exact keywords are returned untouched.
func NormalizeKeywords(keywords string, exact bool) string {
	if exact {
		return keywords
	}
	keywords = strings.ReplaceAll(keywords, "%", `\%`)
	return whitespaceRegex.ReplaceAllString(keywords, "%")
}

// DenormalizeKeywords reverses NormalizeKeywords for display and fuzzy
// matching, wildcards become single spaces again.
func DenormalizeKeywords(pattern string) string {
	const escaped = "\x00"
	pattern = strings.ReplaceAll(pattern, `\%`, escaped)
	pattern = strings.ReplaceAll(pattern, "%", " ")
	return strings.ReplaceAll(pattern, escaped, "%")
}

// ScriptLookup maps a single character to its alternate-script form, for
// instance a traditional chinese character to the japanese kanji used in song
// titles. An empty result means there is no mapping.
type ScriptLookup interface {
	ScriptVariant(ctx context.Context, char string) (string, error)
}

// FoldScript replaces every character of keywords that has an alternate-script
// form.
func FoldScript(ctx context.Context, keywords string, lookup ScriptLookup) (string, error) {
	seen := map[rune]struct{}{}
	var replacements []string

	for _, r := range keywords {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		if r < 0x80 {
			continue
		}

		variant, err := lookup.ScriptVariant(ctx, string(r))
		if err != nil {
			return "", err
		}
		if variant != "" && variant != string(r) {
			replacements = append(replacements, string(r), variant)
		}
	}

	if len(replacements) == 0 {
		return keywords, nil
	}
	return strings.NewReplacer(replacements...).Replace(keywords), nil
}
