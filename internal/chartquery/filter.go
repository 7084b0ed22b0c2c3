package chartquery

import (
	"regexp"
	"strconv"
	"strings"
)

// Mode is the play side of a chart.
type Mode string

const (
	ModeSP Mode = "SP"
	ModeDP Mode = "DP"
)

// Difficulty is a chart difficulty letter, or DifficultyAll.
type Difficulty string

const (
	DifficultyAll         Difficulty = "ALL"
	DifficultyBeginner    Difficulty = "B"
	DifficultyNormal      Difficulty = "N"
	DifficultyHyper       Difficulty = "H"
	DifficultyAnother     Difficulty = "A"
	DifficultyLeggendaria Difficulty = "L"
)

// Difficulties lists every difficulty in catalog order.
var Difficulties = []Difficulty{
	DifficultyBeginner,
	DifficultyNormal,
	DifficultyHyper,
	DifficultyAnother,
	DifficultyLeggendaria,
}

// Rank is the position of the difficulty in catalog order, -1 when unknown.
func (d Difficulty) Rank() int {
	for i, known := range Difficulties {
		if d == known {
			return i
		}
	}
	return -1
}

// Level is a chart level from 1 to 12, LevelAll matches every level.
type Level int

const (
	LevelAll Level = 0
	MinLevel Level = 1
	MaxLevel Level = 12
)

func (l Level) String() string {
	if l == LevelAll {
		return "ALL"
	}
	return strconv.Itoa(int(l))
}

// ChartFilter narrows a catalog query down to a mode, difficulty and level.
type ChartFilter struct {
	Mode       Mode
	Difficulty Difficulty
	Level      Level
}

// AllCharts is the filter used when the command has no filter token.
var AllCharts = ChartFilter{
	Mode:       ModeSP,
	Difficulty: DifficultyAll,
	Level:      LevelAll,
}

// HasDifficulty reports whether the filter names a single difficulty.
func (f ChartFilter) HasDifficulty() bool {
	return f.Difficulty != DifficultyAll && f.Difficulty != ""
}

// HasLevel reports whether the filter names a single level.
func (f ChartFilter) HasLevel() bool {
	return f.Level != LevelAll
}

// String renders the filter back into token form, e.g. "DPA12" or "SP".
func (f ChartFilter) String() string {
	var sb strings.Builder
	sb.WriteString(string(f.Mode))
	if f.HasDifficulty() {
		sb.WriteString(string(f.Difficulty))
	}
	if f.HasLevel() {
		sb.WriteString(f.Level.String())
	}
	return sb.String()
}

var filterTokenRegex = regexp.MustCompile(`^(SP|DP)?(B|N|H|A|L)?([1-9]|10|11|12)?$`)

// IsFilterToken reports whether token has the shape <mode><difficulty><level>,
// each part optional and case-insensitive.
func IsFilterToken(token string) bool {
	return filterTokenRegex.MatchString(strings.ToUpper(token))
}

// ParseFilterToken parses a filter token, missing parts fall back to AllCharts.
// ok is false when the token does not have the filter shape.
func ParseFilterToken(token string) (filter ChartFilter, ok bool) {
	groups := filterTokenRegex.FindStringSubmatch(strings.ToUpper(token))
	if groups == nil {
		return AllCharts, false
	}

	filter = AllCharts
	if groups[1] != "" {
		filter.Mode = Mode(groups[1])
	}
	if groups[2] != "" {
		filter.Difficulty = Difficulty(groups[2])
	}
	if groups[3] != "" {
		level, err := strconv.Atoi(groups[3])
		if err != nil {
			return AllCharts, false
		}
		filter.Level = Level(level)
	}
	return filter, true
}
