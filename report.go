package bidfilter

import (
	"encoding/json"
	"io"
	"time"
)

// Ensure encoders implement ReportEncoder at compile time.
var (
	_ ReportEncoder = (*TextEncoder)(nil)
	_ ReportEncoder = (*JSONEncoder)(nil)
)

// TextEncoder writes bids in the FormatBids layout.
type TextEncoder struct {
	// Now anchors relative dates. Defaults to time.Now.
	Now func() time.Time
}

// Encode implements ReportEncoder.
func (e *TextEncoder) Encode(w io.Writer, bids []*Bid) error {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	out := FormatBids(bids, now())
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

// JSONEncoder writes bids as an indented JSON array.
type JSONEncoder struct{}

// Encode implements ReportEncoder. No bids encode as an empty array.
func (e *JSONEncoder) Encode(w io.Writer, bids []*Bid) error {
	if bids == nil {
		bids = []*Bid{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bids)
}
