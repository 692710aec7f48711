package goquery

import (
	"regexp"
	"strings"
	"sync"

	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

// Ensure Extractor implements bidfilter.FieldExtractor at compile time.
var _ bidfilter.FieldExtractor = (*Extractor)(nil)

// DefaultStopLabels are the labels that end an inline value. A wrapper
// whose text reads "Bid No: 1 Items: Laptop" yields "1" for the bid number.
var DefaultStopLabels = []bidfilter.LabelSet{
	bidfilter.BidNumberLabels,
	bidfilter.ItemsLabels,
	bidfilter.QuantityLabels,
	bidfilter.DepartmentLabels,
	bidfilter.StartDateLabels,
	bidfilter.EndDateLabels,
}

// Extractor pulls labeled values out of bid cards with layered heuristics,
// from the most to the least structurally reliable:
//
//  1. date-shaped value right after the label in the card's text (date fields only)
//  2. value after the label inside the label-bearing element
//  3. first following sibling element that is not itself a label
//  4. text node adjacency: the value node next to a bare label node
type Extractor struct {
	stop *regexp.Regexp

	mu       sync.Mutex
	matchers map[string]*labelMatcher
}

// NewExtractor creates an Extractor that ends inline values at the given
// stop labels, or at DefaultStopLabels when none are given.
func NewExtractor(stops ...bidfilter.LabelSet) *Extractor {
	if len(stops) == 0 {
		stops = DefaultStopLabels
	}
	var patterns []string
	for _, set := range stops {
		for _, l := range set.Labels {
			patterns = append(patterns, l.Pattern())
		}
	}
	return &Extractor{
		stop:     regexp.MustCompile(`(?i)(?:` + strings.Join(patterns, "|") + `)\s*:`),
		matchers: make(map[string]*labelMatcher),
	}
}

// labelMatcher holds the compiled forms of one label.
type labelMatcher struct {
	match  *regexp.Regexp
	inline *regexp.Regexp
	date   *regexp.Regexp
}

func (e *Extractor) matcher(l bidfilter.Label) *labelMatcher {
	p := l.Pattern()

	e.mu.Lock()
	defer e.mu.Unlock()
	if m, ok := e.matchers[p]; ok {
		return m
	}
	m := &labelMatcher{
		match:  regexp.MustCompile(`(?i)` + p),
		inline: regexp.MustCompile(`(?i)` + p + `\s*:?\s*(.+)`),
		date:   regexp.MustCompile(`(?i)` + p + `\s*:?\s*(` + bidfilter.DateValuePattern + `)`),
	}
	e.matchers[p] = m
	return m
}

func (e *Extractor) compile(set bidfilter.LabelSet) []*labelMatcher {
	res := make([]*labelMatcher, len(set.Labels))
	for i, l := range set.Labels {
		res[i] = e.matcher(l)
	}
	return res
}

// Extract returns the value labeled by one of labels, or "" when no layer
// finds one. Within a layer, nodes are visited in document order and labels
// in set order.
func (e *Extractor) Extract(card *html.Node, labels bidfilter.LabelSet) string {
	if card == nil || len(labels.Labels) == 0 {
		return ""
	}
	ms := e.compile(labels)

	if labels.Date {
		text := nodeText(card)
		for _, m := range ms {
			if sm := m.date.FindStringSubmatch(text); sm != nil {
				return normalize(sm[1])
			}
		}
	}

	for _, el := range elements(card) {
		text := nodeText(el)
		if text == "" {
			continue
		}
		for _, m := range ms {
			if !m.match.MatchString(text) {
				continue
			}
			if v := e.capture(m, text); v != "" {
				return v
			}
			if v := e.siblingValue(card, el, ms); v != "" {
				return v
			}
		}
	}

	nodes := textNodes(card)
	for i, tn := range nodes {
		for _, m := range ms {
			loc := m.match.FindStringIndex(tn.text)
			if loc == nil {
				continue
			}
			if v := e.capture(m, tn.text); v != "" {
				return v
			}
			if rest := trimSeparators(tn.text[:loc[0]] + tn.text[loc[1]:]); rest != "" {
				continue
			}
			if v := e.adjacentValue(tn, nodes[i+1:]); v != "" {
				return v
			}
		}
	}

	return ""
}

// capture returns the text following the label inside text, cut at the next
// known label. An empty result means the label consumed the whole text.
func (e *Extractor) capture(m *labelMatcher, text string) string {
	sm := m.inline.FindStringSubmatch(text)
	if sm == nil {
		return ""
	}
	v := sm[1]
	if loc := e.stop.FindStringIndex(v); loc != nil {
		v = v[:loc[0]]
	}
	return trimSeparators(v)
}

// siblingValue returns the text of the first element after label that is
// not itself a label, looking at label's following siblings and then at its
// parent's following siblings while the parent is inside card.
func (e *Extractor) siblingValue(card, label *html.Node, ms []*labelMatcher) string {
	if v := e.nextSiblingValue(label, ms); v != "" {
		return v
	}
	if parent := label.Parent; parent != nil && parent != card && contains(card, parent) {
		return e.nextSiblingValue(parent, ms)
	}
	return ""
}

func (e *Extractor) nextSiblingValue(n *html.Node, ms []*labelMatcher) string {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type != html.ElementNode {
			continue
		}
		text := nodeText(s)
		if text != "" && !matchesAny(text, ms) && !e.isLabel(text) {
			return text
		}
	}
	return ""
}

// adjacentValue resolves a bare label text node: the other text under its
// parent (the last one when there are several), else the next text node.
func (e *Extractor) adjacentValue(label textNode, following []textNode) string {
	if parent := label.node.Parent; parent != nil {
		var last string
		for _, tn := range textNodes(parent) {
			if tn.node != label.node && !e.isLabel(tn.text) {
				last = tn.text
			}
		}
		if last != "" {
			return last
		}
	}
	for _, tn := range following {
		if !e.isLabel(tn.text) {
			return tn.text
		}
	}
	return ""
}

// isLabel reports whether text carries a known "Label:" of its own and so
// cannot be the value of another label.
func (e *Extractor) isLabel(text string) bool {
	return e.stop.MatchString(text)
}

func matchesAny(text string, ms []*labelMatcher) bool {
	for _, m := range ms {
		if m.match.MatchString(text) {
			return true
		}
	}
	return false
}

// trimSeparators strips the colons, dashes and spaces that sit between a
// label and its value. A leading period closes an abbreviated label such as
// "Bid No." and goes too; a trailing one belongs to the value.
func trimSeparators(s string) string {
	return strings.TrimRight(strings.TrimLeft(normalize(s), ".: -"), ": -")
}
