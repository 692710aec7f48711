// Package goquery implements bid extraction and re-ordering over HTML trees
// using goquery selectors and golang.org/x/net/html nodes.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// selection wraps a single node for selector queries.
func selection(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}

// normalize collapses runs of whitespace into single spaces and trims.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// nodeText returns the collapsed text content of n's subtree.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
			return
		case n.Type == html.ElementNode && isHidden(n):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return normalize(sb.String())
}

// textNode is a non-empty text node with its normalized text.
type textNode struct {
	node *html.Node
	text string
}

// textNodes returns the non-empty text nodes under root in document order.
func textNodes(root *html.Node) []textNode {
	var res []textNode
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := normalize(n.Data); text != "" {
				res = append(res, textNode{node: n, text: text})
			}
			return
		}
		if n.Type == html.ElementNode && isHidden(n) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return res
}

// isHidden reports elements whose text is never rendered.
func isHidden(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	return false
}

// elements returns the element descendants of root in document order,
// excluding root itself.
func elements(root *html.Node) []*html.Node {
	var res []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			res = append(res, c)
			walk(c)
		}
	}
	walk(root)
	return res
}

// contains reports whether n is a or one of its descendants.
func contains(a, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == a {
			return true
		}
	}
	return false
}

// body returns the <body> element of doc, or doc itself when there is none.
func body(doc *html.Node) *html.Node {
	if b := selection(doc).Find("body").First(); b.Length() > 0 {
		return b.Get(0)
	}
	return doc
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
