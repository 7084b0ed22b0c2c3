package iidxme

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"iidxbot/internal/apperr"
	"iidxbot/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Page is a parsed song page. Every chart of the song is read from the same
// page.
type Page struct {
	doc   *goquery.Document
	order htmlutil.Order
}

func NewPage(doc *goquery.Document) *Page {
	return &Page{
		doc:   doc,
		order: htmlutil.NewOrder(doc.Nodes[0]),
	}
}

func ParsePage(body []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %s", apperr.ErrPageParse, err.Error())
	}
	return NewPage(doc), nil
}

var digitsRegex = regexp.MustCompile(`^[0-9]+$`)

// ExtractPersonalBest reads the best lamp, score and miss count of chartID.
//
// The lamp is the first non-empty clear entry, the history lists the most
// recent lamp first. For the score, a strictly greater score replaces the
// best along with its rank, rank delta and rate, while an equal score only
// moves the row that the version label is read from.
func ExtractPersonalBest(chartID string, page *Page) (pb PersonalBest, err error) {
	defer func() {
		if r := recover(); r != nil {
			pb = NewPersonalBest()
			err = fmt.Errorf("%w: chart %s: %v", apperr.ErrExtraction, chartID, r)
		}
	}()

	pb = NewPersonalBest()

	section := page.doc.Find(fmt.Sprintf(`div[name="tabview_%s"]`, chartID)).First()
	if section.Length() == 0 {
		return pb, apperr.PageParse("chart section %s", chartID)
	}

	pb.Lamp, err = extractLamp(section)
	if err != nil {
		return NewPersonalBest(), err
	}

	bestRow, err := extractScore(page, section, &pb)
	if err != nil {
		return NewPersonalBest(), err
	}

	if bestRow != -1 {
		labels := section.Find("div.table_fixcol.music").First()
		if labels.Length() == 0 {
			return NewPersonalBest(), apperr.PageParse("version table of %s", chartID)
		}
		labelRows := labels.Find("div.div_tr")
		if bestRow >= labelRows.Length() {
			return NewPersonalBest(), apperr.PageParse(
				"version row %d of %s, only %d rows", bestRow, chartID, labelRows.Length(),
			)
		}
		fields := strings.Fields(labelRows.Eq(bestRow).Find("span.short").First().Text())
		if len(fields) > 0 {
			pb.Version = fields[len(fields)-1]
		}
	}

	pb.MissCount, err = extractMissCount(section)
	if err != nil {
		return NewPersonalBest(), err
	}

	return pb, nil
}

func extractLamp(section *goquery.Selection) (string, error) {
	entries := section.Find("div.div_td.clear")
	for i := range entries.Nodes {
		label := htmlutil.CleanText(entries.Eq(i))
		if label == "" {
			continue
		}
		abbr, ok := lampAbbreviations[label]
		if !ok {
			return "", apperr.PageParse("unknown lamp %q", label)
		}
		return abbr, nil
	}
	return NoLamp, nil
}

// extractScore fills the score fields of pb and returns the row index the
// best score was read from, or -1.
func extractScore(page *Page, section *goquery.Selection, pb *PersonalBest) (int, error) {
	history := section.Find("div.table_scrollcol.music").First()
	if history.Length() == 0 {
		return -1, apperr.PageParse("score history table")
	}

	ranks := page.doc.Find("p.rank")
	deltas := page.doc.Find("span.pri_border")
	rates := page.doc.Find("div.rate_wrapper")

	bestRow := -1
	rows := history.Find("div.div_tr")
	for idx := range rows.Nodes {
		scoreCell := rows.Eq(idx).Find("p.score").First()
		if scoreCell.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(scoreCell.Text())
		if !digitsRegex.MatchString(text) {
			continue
		}
		score, err := strconv.Atoi(text)
		if err != nil {
			return -1, fmt.Errorf("%w: score %q: %s", apperr.ErrExtraction, text, err.Error())
		}

		switch {
		case score > pb.Score:
			node := scoreCell.Get(0)
			rank := page.order.Previous(node, ranks)
			if rank.Length() == 0 {
				return -1, apperr.PageParse("rank of score row %d", idx)
			}
			rate := page.order.Next(node, rates)
			if rate.Length() == 0 {
				return -1, apperr.PageParse("rate of score row %d", idx)
			}

			pb.Score = score
			pb.Rank = htmlutil.CleanText(rank)
			pb.Rate = htmlutil.CleanText(rate)
			pb.RankDelta = ""
			delta := page.order.Next(node, deltas)
			if delta.Length() > 0 {
				pb.RankDelta = strings.TrimLeftFunc(delta.Text(), unicode.IsSpace)
			}
			bestRow = idx
		case score == pb.Score:
			bestRow = idx
		}
	}

	return bestRow, nil
}

func extractMissCount(section *goquery.Selection) (int, error) {
	missCount := NoMissCount
	cells := section.Find("span.miss")
	for i := range cells.Nodes {
		text := strings.TrimSpace(cells.Eq(i).Text())
		if !digitsRegex.MatchString(text) {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return NoMissCount, fmt.Errorf("%w: miss count %q: %s", apperr.ErrExtraction, text, err.Error())
		}
		if n < missCount {
			missCount = n
		}
	}
	return missCount, nil
}
