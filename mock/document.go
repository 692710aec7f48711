package mock

import (
	"context"
	"io"

	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

var _ bidfilter.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of bidfilter.DocumentStore.
type DocumentStore struct {
	LoadFn func(ctx context.Context, path string) (*html.Node, error)
	SaveFn func(ctx context.Context, path string, doc *html.Node) error
}

func (s *DocumentStore) Load(ctx context.Context, path string) (*html.Node, error) {
	return s.LoadFn(ctx, path)
}

func (s *DocumentStore) Save(ctx context.Context, path string, doc *html.Node) error {
	return s.SaveFn(ctx, path, doc)
}

var _ bidfilter.Converter = (*Converter)(nil)

// Converter is a mock implementation of bidfilter.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ bidfilter.ReportEncoder = (*ReportEncoder)(nil)

// ReportEncoder is a mock implementation of bidfilter.ReportEncoder.
type ReportEncoder struct {
	EncodeFn func(w io.Writer, bids []*bidfilter.Bid) error
}

func (e *ReportEncoder) Encode(w io.Writer, bids []*bidfilter.Bid) error {
	return e.EncodeFn(w, bids)
}
