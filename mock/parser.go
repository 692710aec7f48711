package mock

import (
	"time"

	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

var _ bidfilter.CardLocator = (*CardLocator)(nil)

// CardLocator is a mock implementation of bidfilter.CardLocator.
type CardLocator struct {
	LocateFn func(doc *html.Node) []*html.Node
}

func (l *CardLocator) Locate(doc *html.Node) []*html.Node {
	return l.LocateFn(doc)
}

var _ bidfilter.FieldExtractor = (*FieldExtractor)(nil)

// FieldExtractor is a mock implementation of bidfilter.FieldExtractor.
type FieldExtractor struct {
	ExtractFn func(card *html.Node, labels bidfilter.LabelSet) string
}

func (e *FieldExtractor) Extract(card *html.Node, labels bidfilter.LabelSet) string {
	return e.ExtractFn(card, labels)
}

var _ bidfilter.OrderTracker = (*OrderTracker)(nil)

// OrderTracker is a mock implementation of bidfilter.OrderTracker.
type OrderTracker struct {
	StampIfAbsentFn func(n *html.Node, index int)
	OrderFn         func(n *html.Node) (int, bool)
}

func (t *OrderTracker) StampIfAbsent(n *html.Node, index int) {
	t.StampIfAbsentFn(n, index)
}

func (t *OrderTracker) Order(n *html.Node) (int, bool) {
	return t.OrderFn(n)
}

var _ bidfilter.DateCache = (*DateCache)(nil)

// DateCache is a mock implementation of bidfilter.DateCache.
type DateCache struct {
	CachedDateFn func(n *html.Node) (time.Time, bool)
	CacheDateFn  func(n *html.Node, t time.Time)
}

func (c *DateCache) CachedDate(n *html.Node) (time.Time, bool) {
	return c.CachedDateFn(n)
}

func (c *DateCache) CacheDate(n *html.Node, t time.Time) {
	c.CacheDateFn(n, t)
}

var _ bidfilter.BidParser = (*BidParser)(nil)

// BidParser is a mock implementation of bidfilter.BidParser.
type BidParser struct {
	ParseAllFn func(doc *html.Node) []*bidfilter.Bid
}

func (p *BidParser) ParseAll(doc *html.Node) []*bidfilter.Bid {
	return p.ParseAllFn(doc)
}
