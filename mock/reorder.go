package mock

import (
	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

var _ bidfilter.Reorderer = (*Reorderer)(nil)

// Reorderer is a mock implementation of bidfilter.Reorderer.
type Reorderer struct {
	CanReorderFn           func(bids []*bidfilter.Bid) bool
	ReorderFn              func(bids []*bidfilter.Bid) bool
	RestoreOriginalOrderFn func(bids []*bidfilter.Bid) bool
}

func (r *Reorderer) CanReorder(bids []*bidfilter.Bid) bool {
	return r.CanReorderFn(bids)
}

func (r *Reorderer) Reorder(bids []*bidfilter.Bid) bool {
	return r.ReorderFn(bids)
}

func (r *Reorderer) RestoreOriginalOrder(bids []*bidfilter.Bid) bool {
	return r.RestoreOriginalOrderFn(bids)
}

var _ bidfilter.Marker = (*Marker)(nil)

// Marker is a mock implementation of bidfilter.Marker.
type Marker struct {
	MarkFn   func(n *html.Node, name string)
	UnmarkFn func(n *html.Node, names ...string)
}

func (m *Marker) Mark(n *html.Node, name string) {
	m.MarkFn(n, name)
}

func (m *Marker) Unmark(n *html.Node, names ...string) {
	m.UnmarkFn(n, names...)
}
