package bidfilter

import (
	"time"

	"golang.org/x/net/html"
)

// Bid is one procurement record extracted from a listing page.
// Text fields are empty when the corresponding label was not found.
type Bid struct {
	Number     string `json:"bidNumber"`
	Items      string `json:"items"`
	Quantity   string `json:"quantity"`
	Department string `json:"department"`

	// StartDate and EndDate are zero when the raw text is missing or malformed.
	StartDate    time.Time `json:"startDate,omitzero"`
	EndDate      time.Time `json:"endDate,omitzero"`
	StartDateRaw string    `json:"startDateRaw"`
	EndDateRaw   string    `json:"endDateRaw"`

	// Order is the original-order index stamped on Ordering, 0 when unstamped.
	Order int `json:"order"`

	// Anchor identifies the bid in the tree and carries highlight markers.
	Anchor *html.Node `json:"-"`

	// Ordering is the ancestor-or-self of Anchor that is moved when the
	// list is re-ordered. It may equal Anchor.
	Ordering *html.Node `json:"-"`
}

// Dated reports whether the bid has a parsed start date.
func (b *Bid) Dated() bool {
	return !b.StartDate.IsZero()
}

// Target returns the node used for physical reordering and hiding.
func (b *Bid) Target() *html.Node {
	if b.Ordering != nil {
		return b.Ordering
	}
	return b.Anchor
}

// CardLocator finds the nodes that represent individual bids.
type CardLocator interface {
	// Locate returns bid anchors in the order first found, without
	// duplicates and without one anchor nested inside another.
	// An empty result means the page was not recognized.
	Locate(doc *html.Node) []*html.Node
}

// FieldExtractor pulls a labeled value out of a bid card.
type FieldExtractor interface {
	// Extract returns the collapsed, trimmed value labeled by one of the
	// labels, or "" when none is found.
	Extract(card *html.Node, labels LabelSet) string
}

// OrderTracker stamps and reads the original-order index of a node.
type OrderTracker interface {
	// StampIfAbsent records index for n unless n already has one.
	StampIfAbsent(n *html.Node, index int)

	// Order returns the stamped index and whether one exists.
	Order(n *html.Node) (int, bool)
}

// DateCache remembers the normalized start date of a bid card across passes.
type DateCache interface {
	CachedDate(n *html.Node) (time.Time, bool)
	CacheDate(n *html.Node, t time.Time)
}

// BidParser runs one full extraction pass over a document.
type BidParser interface {
	// ParseAll locates cards, extracts their fields, and stamps original
	// order. The result is rebuilt from the current tree on every call.
	ParseAll(doc *html.Node) []*Bid
}

// Reorderer physically re-orders bid nodes inside their common container.
type Reorderer interface {
	// CanReorder reports whether the bids share a safe container.
	CanReorder(bids []*Bid) bool

	// Reorder moves the bids' ordering nodes into the given sequence.
	// Returns false, leaving the tree untouched, when no safe container exists.
	Reorder(bids []*Bid) bool

	// RestoreOriginalOrder re-orders bids by their stamped original index.
	RestoreOriginalOrder(bids []*Bid) bool
}

// Marker applies and removes named visual markers on nodes.
type Marker interface {
	Mark(n *html.Node, name string)
	Unmark(n *html.Node, names ...string)
}

// Marker names applied by the controller.
const (
	MarkToday  = "gem-bid-highlight-today"
	MarkWeek   = "gem-bid-highlight-week"
	MarkHidden = "gem-bid-hidden"
	MarkDimmed = "gem-bid-dimmed"
)

// AllMarks lists every marker the controller may apply.
var AllMarks = []string{MarkToday, MarkWeek, MarkHidden, MarkDimmed}
