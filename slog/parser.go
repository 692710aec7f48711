// Package slog provides logging decorators for bidfilter services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/bidfilter"
	"golang.org/x/net/html"
)

// Ensure LoggingParser implements bidfilter.BidParser.
var _ bidfilter.BidParser = (*LoggingParser)(nil)

// LoggingParser wraps a BidParser with debug logging of each pass.
type LoggingParser struct {
	next   bidfilter.BidParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next bidfilter.BidParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// ParseAll delegates to the wrapped parser and logs how many bids were found.
func (p *LoggingParser) ParseAll(doc *html.Node) (bids []*bidfilter.Bid) {
	defer func(begin time.Time) {
		dated := 0
		for _, b := range bids {
			if b.Dated() {
				dated++
			}
		}
		p.logger.Debug("extraction pass",
			"bids", len(bids),
			"dated", dated,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.ParseAll(doc)
}
