package htmltomarkdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

// Ensure ReportEncoder implements bidfilter.ReportEncoder at compile time.
var _ bidfilter.ReportEncoder = (*ReportEncoder)(nil)

// ReportEncoder writes bids as Markdown: a heading and a field table per
// bid, optionally followed by the card's own markup.
type ReportEncoder struct {
	Converter bidfilter.Converter

	// IncludeCard appends each bid's card content below its table.
	IncludeCard bool

	// Now anchors relative dates. Defaults to time.Now.
	Now func() time.Time
}

// NewReportEncoder creates a ReportEncoder backed by conv.
func NewReportEncoder(conv bidfilter.Converter) *ReportEncoder {
	return &ReportEncoder{Converter: conv}
}

// Encode implements bidfilter.ReportEncoder.
func (e *ReportEncoder) Encode(w io.Writer, bids []*bidfilter.Bid) error {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	at := now()

	sections := make([]string, 0, len(bids))
	for i, b := range bids {
		md, err := e.Converter.Convert(bidHTML(b, i, at))
		if err != nil {
			return fmt.Errorf("converting bid %d: %w", i+1, err)
		}
		if e.IncludeCard && b.Anchor != nil {
			card, err := renderCard(b.Anchor)
			if err != nil {
				return err
			}
			if strings.TrimSpace(card) != "" {
				cardMD, err := e.Converter.Convert(card)
				if err != nil {
					return fmt.Errorf("converting card %d: %w", i+1, err)
				}
				md += "\n\n" + cardMD
			}
		}
		sections = append(sections, md)
	}
	if len(sections) == 0 {
		return nil
	}

	_, err := io.WriteString(w, strings.Join(sections, "\n\n")+"\n")
	return err
}

// bidHTML builds the HTML fragment for one bid. Values are escaped since
// they come from untrusted page text.
func bidHTML(b *bidfilter.Bid, i int, now time.Time) string {
	header := b.Number
	if header == "" {
		header = fmt.Sprintf("#%d", i+1)
	}

	var sb strings.Builder
	sb.WriteString("<h2>Bid: " + html.EscapeString(header) + "</h2>")

	rows := [][2]string{
		{"Items", b.Items},
		{"Quantity", b.Quantity},
		{"Department", b.Department},
		{"Start", startValue(b, now)},
		{"End", b.EndDateRaw},
	}
	var body strings.Builder
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		body.WriteString("<tr><td>" + r[0] + "</td><td>" + html.EscapeString(r[1]) + "</td></tr>")
	}
	if body.Len() > 0 {
		sb.WriteString("<table><thead><tr><th>Field</th><th>Value</th></tr></thead><tbody>")
		sb.WriteString(body.String())
		sb.WriteString("</tbody></table>")
	}
	return sb.String()
}

func startValue(b *bidfilter.Bid, now time.Time) string {
	if b.StartDateRaw == "" || !b.Dated() {
		return b.StartDateRaw
	}
	return b.StartDateRaw + " (" + bidfilter.FormatRelative(b.StartDate, now) + ")"
}

// renderCard renders the children of the card node.
func renderCard(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
