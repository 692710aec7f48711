package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

// Ensure ClassMarker implements bidfilter.Marker at compile time.
var _ bidfilter.Marker = (*ClassMarker)(nil)

// ClassMarker applies markers as CSS classes.
type ClassMarker struct{}

// NewClassMarker creates a new ClassMarker.
func NewClassMarker() *ClassMarker {
	return &ClassMarker{}
}

// Mark adds the class name to n.
func (m *ClassMarker) Mark(n *html.Node, name string) {
	if n == nil {
		return
	}
	sel := selection(n)
	sel.AddClass(name)
	tidyClass(sel)
}

// Unmark removes the class names from n. The class attribute is dropped
// once it is empty.
func (m *ClassMarker) Unmark(n *html.Node, names ...string) {
	if n == nil || len(names) == 0 {
		return
	}
	sel := selection(n)
	sel.RemoveClass(names...)
	tidyClass(sel)
}

// tidyClass collapses the class list to single spaces and drops the
// attribute when nothing is left.
func tidyClass(sel *goquery.Selection) {
	class, ok := sel.Attr("class")
	if !ok {
		return
	}
	if fields := strings.Fields(class); len(fields) > 0 {
		sel.SetAttr("class", strings.Join(fields, " "))
		return
	}
	sel.RemoveAttr("class")
}

// HasMark reports whether n carries the class name.
func HasMark(n *html.Node, name string) bool {
	if n == nil {
		return false
	}
	return selection(n).HasClass(name)
}
