package goquery

import (
	"strconv"
	"time"

	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

// Attributes stamped on bid nodes.
const (
	OriginalOrderAttr = "data-gem-original-order"
	StartDateAttr     = "data-gem-start-date-ts"
)

// Compile-time interface verification.
var (
	_ bidfilter.OrderTracker = (*AttrTracker)(nil)
	_ bidfilter.DateCache    = (*AttrTracker)(nil)
)

// AttrTracker keeps order stamps and cached dates as attributes on the nodes
// themselves, so they survive re-extraction, reflows and a render/parse
// round trip of the document, and vanish with the node.
type AttrTracker struct {
	// Location is used when restoring cached dates. Defaults to time.Local.
	Location *time.Location
}

// NewAttrTracker creates a new AttrTracker.
func NewAttrTracker() *AttrTracker {
	return &AttrTracker{}
}

// StampIfAbsent records index on n unless n already carries a stamp.
func (t *AttrTracker) StampIfAbsent(n *html.Node, index int) {
	if n == nil {
		return
	}
	if _, ok := getAttr(n, OriginalOrderAttr); ok {
		return
	}
	setAttr(n, OriginalOrderAttr, strconv.Itoa(index))
}

// Order returns the index stamped on n.
func (t *AttrTracker) Order(n *html.Node) (int, bool) {
	if n == nil {
		return 0, false
	}
	v, ok := getAttr(n, OriginalOrderAttr)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

// CachedDate returns the start date cached on n.
func (t *AttrTracker) CachedDate(n *html.Node) (time.Time, bool) {
	if n == nil {
		return time.Time{}, false
	}
	v, ok := getAttr(n, StartDateAttr)
	if !ok {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	loc := t.Location
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc), true
}

// CacheDate stores d on n as unix milliseconds.
func (t *AttrTracker) CacheDate(n *html.Node, d time.Time) {
	if n == nil || d.IsZero() {
		return
	}
	setAttr(n, StartDateAttr, strconv.FormatInt(d.UnixMilli(), 10))
}
