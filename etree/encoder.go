// Package etree writes bid reports as XML.
package etree

import (
	"io"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/bidfilter"
)

// Ensure Encoder implements bidfilter.ReportEncoder at compile time.
var _ bidfilter.ReportEncoder = (*Encoder)(nil)

// Encoder writes bids as a <bids> document, one <bid> element per bid.
// Empty fields are omitted. Dates carry the page text in a raw attribute
// and the parsed value, when there is one, as RFC 3339 element text.
type Encoder struct {
	// Indent is the number of spaces per nesting level. Zero writes
	// compact XML.
	Indent int
}

// NewEncoder creates an Encoder indenting by two spaces.
func NewEncoder() *Encoder {
	return &Encoder{Indent: 2}
}

// Encode implements bidfilter.ReportEncoder.
func (e *Encoder) Encode(w io.Writer, bids []*bidfilter.Bid) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("bids")
	root.CreateAttr("count", strconv.Itoa(len(bids)))
	for _, b := range bids {
		el := root.CreateElement("bid")
		if b.Number != "" {
			el.CreateAttr("number", b.Number)
		}
		if b.Order > 0 {
			el.CreateAttr("order", strconv.Itoa(b.Order))
		}
		addText(el, "items", b.Items)
		addText(el, "quantity", b.Quantity)
		addText(el, "department", b.Department)
		addDate(el, "startDate", b.StartDateRaw, b.StartDate)
		addDate(el, "endDate", b.EndDateRaw, b.EndDate)
	}

	if e.Indent > 0 {
		doc.Indent(e.Indent)
	}
	_, err := doc.WriteTo(w)
	return err
}

func addText(parent *etree.Element, tag, value string) {
	if value == "" {
		return
	}
	parent.CreateElement(tag).SetText(value)
}

func addDate(parent *etree.Element, tag, raw string, t time.Time) {
	if raw == "" && t.IsZero() {
		return
	}
	el := parent.CreateElement(tag)
	if raw != "" {
		el.CreateAttr("raw", raw)
	}
	if !t.IsZero() {
		el.SetText(t.Format(time.RFC3339))
	}
}
