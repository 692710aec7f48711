// Package xxhash implements a side-table OrderTracker that identifies nodes
// by an xxHash fingerprint of their structure instead of writing attributes
// into the document.
package xxhash

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ bidfilter.OrderTracker = (*Tracker)(nil)
	_ bidfilter.DateCache    = (*Tracker)(nil)
)

var dateValueRe = regexp.MustCompile(`(?i)` + bidfilter.DateValuePattern)

// Tracker keeps order stamps and cached dates in memory, keyed by
// Fingerprint. Stamps survive re-parsing the same page since equal markup
// yields equal fingerprints. Cards with identical markup share one entry.
type Tracker struct {
	mu     sync.Mutex
	orders map[uint64]int
	dates  map[uint64]time.Time
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		orders: make(map[uint64]int),
		dates:  make(map[uint64]time.Time),
	}
}

// StampIfAbsent records index for n unless its fingerprint already has one.
func (t *Tracker) StampIfAbsent(n *html.Node, index int) {
	if n == nil {
		return
	}
	key := Fingerprint(n)

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.orders[key]; !ok {
		t.orders[key] = index
	}
}

// Order returns the index stamped for n.
func (t *Tracker) Order(n *html.Node) (int, bool) {
	if n == nil {
		return 0, false
	}
	key := Fingerprint(n)

	t.mu.Lock()
	defer t.mu.Unlock()
	i, ok := t.orders[key]
	return i, ok
}

// CachedDate returns the start date cached for n.
func (t *Tracker) CachedDate(n *html.Node) (time.Time, bool) {
	if n == nil {
		return time.Time{}, false
	}
	key := Fingerprint(n)

	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.dates[key]
	return d, ok
}

// CacheDate stores d for n. Zero dates are ignored.
func (t *Tracker) CacheDate(n *html.Node, d time.Time) {
	if n == nil || d.IsZero() {
		return
	}
	key := Fingerprint(n)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.dates[key] = d
}

// Len returns the number of stamped fingerprints.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.orders)
}

// Fingerprint hashes n's tag name, id attribute and collapsed text.
// Date values are left out of the text so a card keeps its identity when
// its date is filled in or removed.
func Fingerprint(n *html.Node) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(n.Data)
	_, _ = d.WriteString("\x00")
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "id" {
			_, _ = d.WriteString(a.Val)
		}
	}
	_, _ = d.WriteString("\x00")
	text := goquery.NewDocumentFromNode(n).Text()
	text = dateValueRe.ReplaceAllString(text, "")
	_, _ = d.WriteString(strings.Join(strings.Fields(text), " "))
	return d.Sum64()
}
