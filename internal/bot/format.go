package bot

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"iidxbot/internal/catalog"
	"iidxbot/internal/scrapers/iidxme"
	"iidxbot/internal/targetscore"
)

const (
	separator = "／"
	colon     = "："
)

func levelText(level int) string {
	if level < 0 {
		return "?"
	}
	return strconv.Itoa(level)
}

func padLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// center pads s to width, an odd padding leaves the extra space on the right.
func center(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func (b *Bot) chartPrefix(chart catalog.Chart) string {
	return b.cfg.DifficultyEmoji[string(chart.Difficulty)] + padLeft(levelText(chart.Level), 2) + colon
}

func (b *Bot) songURL(version, username, songID string) string {
	return fmt.Sprintf(
		"%s/%s/%s/music/%s",
		strings.TrimRight(b.cfg.Iidxme.BaseURL, "/"),
		version,
		url.PathEscape(username),
		songID,
	)
}

// writeMatchSummary writes the notices about the number of matches. It
// returns false when there is nothing more to write.
func (b *Bot) writeMatchSummary(desc *strings.Builder, q SongQuery) bool {
	m := b.cfg.Messages
	if q.TooMany() {
		desc.WriteString(m.TooManyResults + "\n\n")
	}
	if q.Total > 0 {
		return true
	}
	desc.WriteString(m.ResultNotFound)
	if q.Suggestion != "" {
		desc.WriteString("\n" + fmt.Sprintf(m.DidYouMean, escapeMarkdown(q.Suggestion)))
	}
	return false
}

func pbLine(pb iidxme.PersonalBest, showPercentage bool) string {
	rankAndScore := "--"
	if pb.Score != iidxme.NoScore {
		rankAndScore = fmt.Sprintf("__%s__ [%s] %d", pb.Version, pb.Rank, pb.Score)
		detail := pb.RankDelta
		if showPercentage {
			detail = pb.Rate
		}
		if detail != "" {
			rankAndScore += fmt.Sprintf(" _(%s)_", detail)
		}
	}

	missCount := "--"
	if pb.MissCount != iidxme.NoMissCount {
		missCount = fmt.Sprintf("BP %d", pb.MissCount)
	}

	return pb.Lamp + separator + rankAndScore + separator + missCount
}

func record(records map[string]iidxme.PersonalBest, chartID string) iidxme.PersonalBest {
	pb, ok := records[chartID]
	if !ok {
		return iidxme.NewPersonalBest()
	}
	return pb
}

func (b *Bot) pbEmbed(r PBResult) Embed {
	embed := Embed{
		Title:  b.cfg.Commands.PB.Title,
		Colour: b.cfg.Colours.Default,
	}

	var desc strings.Builder
	fmt.Fprintf(&desc, "Player: %s (%s)\n\n", escapeMarkdown(r.Player.Username), r.Parsed.Filter.Mode)
	if !b.writeMatchSummary(&desc, r.SongQuery) {
		embed.Description = desc.String()
		return embed
	}

	filter := r.Parsed.Filter
	showSongURL := !filter.HasDifficulty() && !filter.HasLevel()
	for _, song := range r.Songs {
		fmt.Fprintf(&desc, "**%s**\n", escapeMarkdown(song.Title))
		link := b.songURL(r.Player.Version, r.Player.Username, song.ID)
		if !showSongURL {
			link += "#" + song.Charts[0].ID
		}
		desc.WriteString(link + "\n")

		for _, chart := range song.Charts {
			pb := record(r.Player.Records, chart.ID)
			desc.WriteString(b.chartPrefix(chart) + pbLine(pb, r.Parsed.ShowPercentage) + "\n")
		}
		desc.WriteString("\n")
	}

	embed.Description = desc.String()
	embed.Footer = b.pbFooter(r.Player.Records)
	return embed
}

const (
	rankMAX = "MAX"
	rankAAA = "AAA"
)

func (b *Bot) pbFooter(records map[string]iidxme.PersonalBest) string {
	if len(records) == 0 {
		return ""
	}
	m := b.cfg.Messages

	allFC := true
	allAAA := true
	allNoPlay := true
	for _, pb := range records {
		if pb.Rank == rankMAX {
			return m.HasMax
		}
		if pb.Lamp != iidxme.LampFullCombo {
			allFC = false
		}
		if pb.Rank != rankAAA {
			allAAA = false
		}
		if pb.Played() {
			allNoPlay = false
		}
	}

	switch {
	case allFC && allAAA:
		return m.AllFCAndAAA
	case allFC:
		return m.AllFC
	case allAAA:
		return m.AllAAA
	case allNoPlay:
		return m.AllNoPlay
	}
	return ""
}

// scoreCell right-aligns a target score. Narrow digits get extra padding so
// the columns line up in a proportional font.
func scoreCell(score int) string {
	digits := strconv.Itoa(score)
	width := len(digits) + 2
	if len(digits) < 4 {
		width += 3
	}
	width += strings.Count(digits, "1")
	return padLeft(digits, width)
}

func (b *Bot) srEmbed(r SRResult) Embed {
	embed := Embed{
		Title:  fmt.Sprintf("%s (%s)", b.cfg.Commands.SR.Title, r.Parsed.Filter.Mode),
		Colour: b.cfg.Colours.Default,
	}

	var desc strings.Builder
	if !b.writeMatchSummary(&desc, r.SongQuery) {
		embed.Description = desc.String()
		return embed
	}

	header := []string{center("AAA-", 6), center("AAA", 4), center("MAX-", 5), center("MAX", 5)}
	desc.WriteString("Rank  :  " + strings.Join(header, separator) + "\n")
	desc.WriteString(strings.Repeat("¯", 56) + "\n")

	for _, song := range r.Songs {
		fmt.Fprintf(&desc, "**%s**\n", escapeMarkdown(song.Title))
		for _, chart := range song.Charts {
			desc.WriteString(b.chartPrefix(chart))
			if chart.Notes < 0 {
				desc.WriteString(" " + b.cfg.Messages.NotesTBD + "\n")
				continue
			}
			t := targetscore.Compute(chart.Notes)
			cells := []string{scoreCell(t.AAAMinus), scoreCell(t.AAA), scoreCell(t.MAXMinus), scoreCell(t.MAX)}
			desc.WriteString(strings.Join(cells, "  "+separator) + "\n")
		}
		desc.WriteString("\n")
	}

	embed.Description = desc.String()
	return embed
}

func vsCell(pb iidxme.PersonalBest) string {
	if pb.Score == iidxme.NoScore {
		return pb.Lamp + " --"
	}
	return fmt.Sprintf("%s %d", pb.Lamp, pb.Score)
}

func (b *Bot) vsEmbed(r VSResult) Embed {
	embed := Embed{
		Title:  fmt.Sprintf("%s (%s)", b.cfg.Commands.VS.Title, r.Parsed.Filter.Mode),
		Colour: b.cfg.Colours.Default,
	}
	left, right := r.Players[0], r.Players[1]

	var desc strings.Builder
	fmt.Fprintf(&desc, "%s vs %s\n\n", escapeMarkdown(left.Username), escapeMarkdown(right.Username))
	if !b.writeMatchSummary(&desc, r.SongQuery) {
		embed.Description = desc.String()
		return embed
	}

	leftWins, rightWins := 0, 0
	for _, song := range r.Songs {
		fmt.Fprintf(&desc, "**%s**\n", escapeMarkdown(song.Title))
		for _, chart := range song.Charts {
			l := record(left.Records, chart.ID)
			rr := record(right.Records, chart.ID)

			verdict := ""
			switch {
			case l.Score == iidxme.NoScore && rr.Score == iidxme.NoScore:
			case l.Score > rr.Score:
				verdict = " ◀"
				leftWins++
			case rr.Score > l.Score:
				verdict = " ▶"
				rightWins++
			default:
				verdict = " ="
			}
			desc.WriteString(b.chartPrefix(chart) + vsCell(l) + " " + separator + " " + vsCell(rr) + verdict + "\n")
		}
		desc.WriteString("\n")
	}

	embed.Description = desc.String()
	embed.Footer = fmt.Sprintf("%s %d : %d %s", left.Username, leftWins, rightWins, right.Username)
	if leftWins == rightWins {
		embed.Footer += "\n" + b.cfg.Messages.Draw
	}
	return embed
}

func (b *Bot) loadingEmbed(title string) Embed {
	return Embed{
		Title:       title,
		Description: b.cfg.Messages.Loading,
		Colour:      b.cfg.Colours.Default,
	}
}
