package goquery

import (
	"time"

	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

// Ensure Parser implements bidfilter.BidParser at compile time.
var _ bidfilter.BidParser = (*Parser)(nil)

// Parser runs extraction passes: locate cards, extract fields, parse dates
// and stamp original order.
type Parser struct {
	Locator   bidfilter.CardLocator
	Extractor bidfilter.FieldExtractor
	Tracker   bidfilter.OrderTracker

	// Dates caches parsed start dates. Optional.
	Dates bidfilter.DateCache

	// Location dates are interpreted in. Defaults to time.Local.
	Location *time.Location
}

// NewParser creates a Parser with the default locator and extractor that
// keeps its stamps on the document nodes.
func NewParser() *Parser {
	tracker := NewAttrTracker()
	return &Parser{
		Locator:   NewLocator(),
		Extractor: NewExtractor(),
		Tracker:   tracker,
		Dates:     tracker,
	}
}

// ParseAll extracts every bid on the page. Ordering nodes are stamped with
// their position the first time they are seen; later passes keep the
// existing stamp.
func (p *Parser) ParseAll(doc *html.Node) []*bidfilter.Bid {
	cards := p.Locator.Locate(doc)
	if len(cards) == 0 {
		return nil
	}

	common := CommonAncestor(cards)
	bids := make([]*bidfilter.Bid, 0, len(cards))
	for _, card := range cards {
		bids = append(bids, p.ParseCard(card, common))
	}

	for i, b := range bids {
		p.Tracker.StampIfAbsent(b.Target(), i)
		b.Order, _ = p.Tracker.Order(b.Target())
	}

	return bids
}

// ParseCard extracts one bid from card. common is the nearest ancestor of
// all cards on the page and determines the bid's ordering node.
func (p *Parser) ParseCard(card, common *html.Node) *bidfilter.Bid {
	b := &bidfilter.Bid{
		Number:       p.Extractor.Extract(card, bidfilter.BidNumberLabels),
		Items:        p.Extractor.Extract(card, bidfilter.ItemsLabels),
		Quantity:     p.Extractor.Extract(card, bidfilter.QuantityLabels),
		Department:   p.Extractor.Extract(card, bidfilter.DepartmentLabels),
		StartDateRaw: p.Extractor.Extract(card, bidfilter.StartDateLabels),
		EndDateRaw:   p.Extractor.Extract(card, bidfilter.EndDateLabels),
		Anchor:       card,
		Ordering:     OrderingNode(card, common),
	}

	if b.StartDateRaw != "" {
		if d, ok := bidfilter.ParseDate(b.StartDateRaw, p.Location); ok {
			b.StartDate = d
			if p.Dates != nil {
				p.Dates.CacheDate(card, d)
			}
		}
	} else if p.Dates != nil {
		if d, ok := p.Dates.CachedDate(card); ok {
			b.StartDate = d
		}
	}

	if b.EndDateRaw != "" {
		b.EndDate, _ = bidfilter.ParseDate(b.EndDateRaw, p.Location)
	}

	return b
}
