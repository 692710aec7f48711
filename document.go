package bidfilter

import (
	"context"
	"io"

	"golang.org/x/net/html"
)

// DocumentStore loads and saves listing pages.
type DocumentStore interface {
	// Load parses the page at path.
	// Returns ENOTFOUND if the page does not exist.
	Load(ctx context.Context, path string) (*html.Node, error)

	// Save renders doc to path. The write is atomic: readers see either the
	// previous page or the new one, never a partial file.
	Save(ctx context.Context, path string, doc *html.Node) error
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}

// ReportEncoder writes extracted bids in some output format.
type ReportEncoder interface {
	Encode(w io.Writer, bids []*Bid) error
}
