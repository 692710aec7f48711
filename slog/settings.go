package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bidfilter"
)

// Ensure LoggingSettingsService implements bidfilter.SettingsService.
var _ bidfilter.SettingsService = (*LoggingSettingsService)(nil)

// LoggingSettingsService wraps a SettingsService with logging.
type LoggingSettingsService struct {
	next   bidfilter.SettingsService
	logger *slog.Logger
}

// NewLoggingSettingsService creates a new LoggingSettingsService.
func NewLoggingSettingsService(next bidfilter.SettingsService, logger *slog.Logger) *LoggingSettingsService {
	return &LoggingSettingsService{next: next, logger: logger}
}

// FindSettings delegates to the wrapped service and logs the result.
func (s *LoggingSettingsService) FindSettings(ctx context.Context) (settings bidfilter.Settings, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find settings",
			"auto_highlight", settings.AutoHighlight,
			"hide_old_bids", settings.HideOldBids,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSettings(ctx)
}

// UpdateSettings delegates to the wrapped service and logs the result.
func (s *LoggingSettingsService) UpdateSettings(ctx context.Context, upd bidfilter.SettingsUpdate) (settings bidfilter.Settings, err error) {
	defer func(begin time.Time) {
		s.logger.Info("update settings",
			"auto_highlight", settings.AutoHighlight,
			"hide_old_bids", settings.HideOldBids,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateSettings(ctx, upd)
}
