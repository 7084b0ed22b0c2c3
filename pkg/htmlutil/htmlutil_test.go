package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const orderFixture = `<html><body>
<div class="row"><p class="rank">A</p><p class="score">10</p><span class="note">first</span></div>
<div class="row"><p class="rank">AA</p><p class="score">20</p></div>
<div class="row"><p class="score">30</p><span class="note">last</span></div>
</body></html>`

func TestOrderPreviousNext(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(orderFixture))
	require.NoError(t, err)
	order := NewOrder(doc.Nodes[0])

	scores := doc.Find("p.score")
	ranks := doc.Find("p.rank")
	notes := doc.Find("span.note")

	require.Equal(t, "A", order.Previous(scores.Get(0), ranks).Text())
	require.Equal(t, "AA", order.Previous(scores.Get(1), ranks).Text())
	// the third row has no rank of its own
	require.Equal(t, "AA", order.Previous(scores.Get(2), ranks).Text())

	require.Equal(t, "first", order.Next(scores.Get(0), notes).Text())
	require.Equal(t, "last", order.Next(scores.Get(1), notes).Text())
	require.Equal(t, 0, order.Next(notes.Get(1), notes).Length())
	require.Equal(t, 0, order.Previous(ranks.Get(0), ranks).Length())
}

func TestOrderIncludesAncestorsAndDescendants(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(orderFixture))
	require.NoError(t, err)
	order := NewOrder(doc.Nodes[0])

	rows := doc.Find("div.row")
	score := doc.Find("p.score").Get(1)
	require.Equal(t, rows.Get(1), order.Previous(score, rows).Get(0))

	body := doc.Find("body")
	require.Equal(t, rows.Get(0), order.Next(body.Get(0), rows).Get(0))
}

func TestCleanText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div>\n  EX   HARD\tCLEAR \u200b</div>"))
	require.NoError(t, err)
	require.Equal(t, "EX HARD CLEAR", CleanText(doc.Find("div")))
}
