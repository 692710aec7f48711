package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/bidfilter"
)

// Ensure LoggingReorderer implements bidfilter.Reorderer.
var _ bidfilter.Reorderer = (*LoggingReorderer)(nil)

// LoggingReorderer wraps a Reorderer with debug logging.
type LoggingReorderer struct {
	next   bidfilter.Reorderer
	logger *slog.Logger
}

// NewLoggingReorderer creates a new LoggingReorderer.
func NewLoggingReorderer(next bidfilter.Reorderer, logger *slog.Logger) *LoggingReorderer {
	return &LoggingReorderer{next: next, logger: logger}
}

// CanReorder delegates to the wrapped reorderer.
func (r *LoggingReorderer) CanReorder(bids []*bidfilter.Bid) bool {
	return r.next.CanReorder(bids)
}

// Reorder delegates to the wrapped reorderer and logs the outcome.
func (r *LoggingReorderer) Reorder(bids []*bidfilter.Bid) (applied bool) {
	defer func(begin time.Time) {
		r.logger.Debug("reorder",
			"bids", len(bids),
			"applied", applied,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.Reorder(bids)
}

// RestoreOriginalOrder delegates to the wrapped reorderer and logs the outcome.
func (r *LoggingReorderer) RestoreOriginalOrder(bids []*bidfilter.Bid) (applied bool) {
	defer func(begin time.Time) {
		r.logger.Debug("restore original order",
			"bids", len(bids),
			"applied", applied,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.RestoreOriginalOrder(bids)
}
