package iidxme

// CurrentVersion is the version segment iidx.me uses for the latest game.
const CurrentVersion = "c"

const (
	NoLamp      = "--"
	NoScore     = -1
	NoRank      = "?"
	NoMissCount = 9999
)

// lamp abbreviations as they are displayed in chat.
const (
	LampNoPlay      = "NO PLAY"
	LampFailed      = "FAILED"
	LampAssistClear = "A-CLEAR"
	LampEasyClear   = "E-CLEAR"
	LampClear       = "CLEAR"
	LampHardClear   = "H-CLEAR"
	LampExHardClear = "EXH-CLEAR"
	LampFullCombo   = "F-COMBO"
)

var lampAbbreviations = map[string]string{
	"NO PLAY":         LampNoPlay,
	"FAILED":          LampFailed,
	"ASSIST CLEAR":    LampAssistClear,
	"EASY CLEAR":      LampEasyClear,
	"CLEAR":           LampClear,
	"HARD CLEAR":      LampHardClear,
	"EX HARD CLEAR":   LampExHardClear,
	"FULLCOMBO CLEAR": LampFullCombo,
}

// PersonalBest is a player's best record on one chart. Version is the short
// label of the game version the score was attained in.
type PersonalBest struct {
	Lamp      string
	Score     int
	Version   string
	Rank      string
	RankDelta string
	Rate      string
	MissCount int
}

func NewPersonalBest() PersonalBest {
	return PersonalBest{
		Lamp:      NoLamp,
		Score:     NoScore,
		Rank:      NoRank,
		MissCount: NoMissCount,
	}
}

// Played reports whether the player has any record on the chart.
func (pb PersonalBest) Played() bool {
	return pb.Score != NoScore || (pb.Lamp != NoLamp && pb.Lamp != LampNoPlay)
}
