// Package htmltomarkdown renders bid reports and bid card markup as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/bidfilter"
)

// DefaultDomain is the GeM bid portal. Cards link to bid documents with
// paths relative to it.
const DefaultDomain = "https://bidplus.gem.gov.in"

// Ensure Converter implements bidfilter.Converter at compile time.
var _ bidfilter.Converter = (*Converter)(nil)

// Converter turns report fragments and card markup into Markdown. Tables
// are kept since reports lay bid fields out as one.
type Converter struct {
	// Domain resolves relative links found in cards. Empty leaves them as is.
	Domain string

	conv *converter.Converter
}

// NewConverter creates a Converter resolving links against DefaultDomain.
func NewConverter() *Converter {
	return &Converter{
		Domain: DefaultDomain,
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert renders an HTML fragment as trimmed Markdown. A fragment with no
// markup at all is EINVALID: a card always carries at least its labels.
func (c *Converter) Convert(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", bidfilter.Errorf(bidfilter.EINVALID, "empty bid markup")
	}

	var opts []converter.ConvertOptionFunc
	if c.Domain != "" {
		opts = append(opts, converter.WithDomain(c.Domain))
	}
	md, err := c.conv.ConvertString(fragment, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
