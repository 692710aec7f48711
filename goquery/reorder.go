package goquery

import (
	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Reorderer implements bidfilter.Reorderer at compile time.
var _ bidfilter.Reorderer = (*Reorderer)(nil)

// Reorderer moves bid nodes inside their common container. It declines to
// act when the nodes do not share a safe direct parent.
type Reorderer struct{}

// NewReorderer creates a new Reorderer.
func NewReorderer() *Reorderer {
	return &Reorderer{}
}

// CanReorder reports whether bids have a container Reorder would use.
func (r *Reorderer) CanReorder(bids []*bidfilter.Bid) bool {
	return Container(targets(bids)) != nil
}

// Reorder re-appends every bid's ordering node to the container in the
// given sequence. Re-appending an existing child moves it to the end, so
// the final child order matches bids. Bids whose nodes have left the
// container are skipped.
func (r *Reorderer) Reorder(bids []*bidfilter.Bid) bool {
	nodes := targets(bids)
	container := Container(nodes)
	if container == nil {
		return false
	}
	for _, n := range nodes {
		if n.Parent != container {
			continue
		}
		container.RemoveChild(n)
		container.AppendChild(n)
	}
	return true
}

// RestoreOriginalOrder re-orders bids ascending by their original index.
func (r *Reorderer) RestoreOriginalOrder(bids []*bidfilter.Bid) bool {
	return r.Reorder(bidfilter.SortByOriginalOrder(bids))
}

// targets returns the attached ordering nodes of bids.
func targets(bids []*bidfilter.Bid) []*html.Node {
	nodes := make([]*html.Node, 0, len(bids))
	for _, b := range bids {
		if b == nil {
			continue
		}
		if n := b.Target(); n != nil && n.Parent != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Container returns the node the given nodes can be safely re-ordered in:
// their nearest common ancestor when it is safe and their direct parent,
// otherwise a direct parent they all share. Returns nil when there is none.
func Container(nodes []*html.Node) *html.Node {
	if len(nodes) == 0 {
		return nil
	}
	if common := CommonAncestor(nodes); IsSafeContainer(common) && allChildrenOf(common, nodes) {
		return common
	}
	if parent := nodes[0].Parent; parent != nil && allChildrenOf(parent, nodes) {
		return parent
	}
	return nil
}

func allChildrenOf(parent *html.Node, nodes []*html.Node) bool {
	for _, n := range nodes {
		if n.Parent != parent {
			return false
		}
	}
	return true
}

// CommonAncestor returns the nearest node containing every node in nodes,
// which may be one of the nodes themselves.
func CommonAncestor(nodes []*html.Node) *html.Node {
	if len(nodes) == 0 {
		return nil
	}
	for candidate := nodes[0]; candidate != nil; candidate = candidate.Parent {
		all := true
		for _, n := range nodes[1:] {
			if !contains(candidate, n) {
				all = false
				break
			}
		}
		if all {
			return candidate
		}
	}
	return nil
}

// IsSafeContainer reports whether children of n may be re-ordered: n is an
// element other than the document's <html> and <body>.
func IsSafeContainer(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	return n.DataAtom != atom.Html && n.DataAtom != atom.Body
}

// OrderingNode returns the ancestor-or-self of card that is a direct child
// of common, or card itself when common is not a safe container above it.
func OrderingNode(card, common *html.Node) *html.Node {
	if card == nil || card == common || !IsSafeContainer(common) || !contains(common, card) {
		return card
	}
	n := card
	for n.Parent != nil && n.Parent != common {
		n = n.Parent
	}
	return n
}
