package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

// Ensure Locator implements bidfilter.CardLocator at compile time.
var _ bidfilter.CardLocator = (*Locator)(nil)

// DefaultCardHints are the container selectors tried, in order, to find
// bid cards across the listing templates seen so far.
var DefaultCardHints = []string{
	".bid-card",
	".bid-card-list .card",
	".search-bid-results .card",
	".card",
	".search-result",
	".bid-listing",
	".list-group-item",
	".result-item",
	".search-result-item",
}

// DefaultPromoteHints are the ancestors a hint match may be promoted to
// when the match itself is only part of a card.
var DefaultPromoteHints = []string{
	".bid-card",
	".card",
	".list-group-item",
	".search-result",
	".bid-listing",
	".result-item",
	".search-result-item",
}

var (
	startDateRe = regexp.MustCompile(`(?i)start\s*date`)
	bidNoRe     = regexp.MustCompile(`(?i)bid\s*no`)
	cardLabelRe = regexp.MustCompile(`(?i)(start\s*date|bid\s*no)`)
)

// Locator finds bid cards using structural hints, falling back to a scan
// of label text when no hint matches.
type Locator struct {
	// Hints are container selectors applied in order.
	Hints []string

	// PromoteHints are ancestor selectors a partial match is promoted to.
	PromoteHints []string
}

// NewLocator creates a Locator with the default hints followed by any extra
// hints, which take lower priority.
func NewLocator(extra ...string) *Locator {
	hints := append([]string{}, DefaultCardHints...)
	return &Locator{
		Hints:        append(hints, extra...),
		PromoteHints: DefaultPromoteHints,
	}
}

// Locate returns bid card anchors in the order first found.
func (l *Locator) Locate(doc *html.Node) []*html.Node {
	if doc == nil {
		return nil
	}

	root := selection(doc)
	var cards []*html.Node
	for _, hint := range l.Hints {
		root.Find(hint).Each(func(_ int, sel *goquery.Selection) {
			if card := l.promote(sel); card != nil {
				cards = append(cards, card)
			}
		})
	}

	if unique := outermost(uniqueNodes(cards)); len(unique) > 0 {
		return unique
	}

	// Fallback: walk up from label text to the nearest card-like ancestor.
	b := body(doc)
	for _, tn := range textNodes(b) {
		if !cardLabelRe.MatchString(tn.text) {
			continue
		}
		for el := tn.node.Parent; el != nil && el != b; el = el.Parent {
			if LooksLikeCard(el) {
				cards = append(cards, el)
				break
			}
		}
	}

	return outermost(uniqueNodes(cards))
}

// promote returns the card a hint match belongs to: the match itself when it
// looks like a card, otherwise the closest promotable ancestor that does.
func (l *Locator) promote(sel *goquery.Selection) *html.Node {
	n := sel.Get(0)
	if LooksLikeCard(n) {
		return n
	}
	for _, hint := range l.PromoteHints {
		candidate := sel.Closest(hint)
		if candidate.Length() == 0 {
			continue
		}
		if c := candidate.Get(0); LooksLikeCard(c) {
			return c
		}
	}
	return nil
}

// LooksLikeCard reports whether n's text holds exactly one bid: a start
// date label and a single bid number label. More than one bid number means
// n contains several cards.
func LooksLikeCard(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	text := nodeText(n)
	if !startDateRe.MatchString(text) {
		return false
	}
	return len(bidNoRe.FindAllStringIndex(text, 2)) == 1
}

// uniqueNodes removes duplicate nodes, keeping the first occurrence.
func uniqueNodes(nodes []*html.Node) []*html.Node {
	seen := make(map[*html.Node]bool, len(nodes))
	res := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if seen[n] {
			continue
		}
		seen[n] = true
		res = append(res, n)
	}
	return res
}

// outermost drops nodes nested inside another node of the set.
func outermost(nodes []*html.Node) []*html.Node {
	set := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		set[n] = true
	}
	res := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		nested := false
		for p := n.Parent; p != nil; p = p.Parent {
			if set[p] {
				nested = true
				break
			}
		}
		if !nested {
			res = append(res, n)
		}
	}
	return res
}
