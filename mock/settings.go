package mock

import (
	"context"

	"github.com/fwojciec/bidfilter"
)

var _ bidfilter.SettingsService = (*SettingsService)(nil)

// SettingsService is a mock implementation of bidfilter.SettingsService.
type SettingsService struct {
	FindSettingsFn   func(ctx context.Context) (bidfilter.Settings, error)
	UpdateSettingsFn func(ctx context.Context, upd bidfilter.SettingsUpdate) (bidfilter.Settings, error)
}

func (s *SettingsService) FindSettings(ctx context.Context) (bidfilter.Settings, error) {
	return s.FindSettingsFn(ctx)
}

func (s *SettingsService) UpdateSettings(ctx context.Context, upd bidfilter.SettingsUpdate) (bidfilter.Settings, error) {
	return s.UpdateSettingsFn(ctx, upd)
}
