package bidfilter

import (
	"fmt"
	"strings"
	"time"
)

// FormatBids formats bids as plain text for terminal display.
// Each bid starts with its number, falling back to its position, and
// missing fields are omitted. Bids are separated by blank lines.
func FormatBids(bids []*Bid, now time.Time) string {
	if len(bids) == 0 {
		return ""
	}

	parts := make([]string, 0, len(bids))
	for i, b := range bids {
		var sb strings.Builder
		header := b.Number
		if header == "" {
			header = fmt.Sprintf("#%d", i+1)
		}
		sb.WriteString("## Bid: " + header)
		writeField(&sb, "Items", b.Items)
		writeField(&sb, "Quantity", b.Quantity)
		writeField(&sb, "Department", b.Department)
		if b.StartDateRaw != "" {
			start := b.StartDateRaw
			if b.Dated() {
				start += " (" + FormatRelative(b.StartDate, now) + ")"
			}
			writeField(&sb, "Start", start)
		}
		writeField(&sb, "End", b.EndDateRaw)
		parts = append(parts, sb.String())
	}

	return strings.Join(parts, "\n\n")
}

func writeField(sb *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	sb.WriteString("\n" + name + ": " + value)
}
