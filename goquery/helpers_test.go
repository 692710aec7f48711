package goquery_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseHTML(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

func find(t *testing.T, doc *html.Node, selector string) *html.Node {
	t.Helper()
	sel := goquery.NewDocumentFromNode(doc).Find(selector)
	require.Equal(t, 1, sel.Length(), "selector %q", selector)
	return sel.Get(0)
}

func ids(nodes []*html.Node) []string {
	res := make([]string, len(nodes))
	for i, n := range nodes {
		for _, a := range n.Attr {
			if a.Key == "id" {
				res[i] = a.Val
			}
		}
	}
	return res
}

// childIDs returns the ids of n's element children in order.
func childIDs(n *html.Node) []string {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return ids(children)
}
