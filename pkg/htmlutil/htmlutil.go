package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText returns the text of sel with non-printable characters removed,
// surrounding whitespace trimmed and inner whitespace runs collapsed.
func CleanText(sel *goquery.Selection) string {
	var text strings.Builder
	for _, n := range sel.Nodes {
		text.WriteString(GetText(n))
	}
	cleaned := removeNonPrintable(text.String())
	cleaned = strings.TrimSpace(cleaned)
	return innerWhitespace.ReplaceAllString(cleaned, " ")
}

// Order is the position of every node of a document in document order
// (pre-order, the order the nodes were parsed in).
type Order map[*html.Node]int

func NewOrder(root *html.Node) Order {
	order := Order{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		order[n] = len(order)
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return order
}

// Previous returns the candidate closest before node in document order. This
// includes the ancestors of node. The result is empty when there is none.
func (o Order) Previous(node *html.Node, candidates *goquery.Selection) *goquery.Selection {
	pos, ok := o[node]
	if !ok {
		return candidates.FilterNodes()
	}

	var closest *html.Node
	closestPos := -1
	for _, c := range candidates.Nodes {
		p, ok := o[c]
		if !ok || p >= pos {
			continue
		}
		if p > closestPos {
			closest = c
			closestPos = p
		}
	}
	if closest == nil {
		return candidates.FilterNodes()
	}
	return candidates.FilterNodes(closest)
}

// Next returns the candidate closest after node in document order. This
// includes the descendants of node. The result is empty when there is none.
func (o Order) Next(node *html.Node, candidates *goquery.Selection) *goquery.Selection {
	pos, ok := o[node]
	if !ok {
		return candidates.FilterNodes()
	}

	var closest *html.Node
	closestPos := len(o)
	for _, c := range candidates.Nodes {
		p, ok := o[c]
		if !ok || p <= pos {
			continue
		}
		if p < closestPos {
			closest = c
			closestPos = p
		}
	}
	if closest == nil {
		return candidates.FilterNodes()
	}
	return candidates.FilterNodes(closest)
}
