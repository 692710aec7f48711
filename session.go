package bidfilter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// View identifies the view a session currently has applied.
type View string

// View constants for Session.ActiveView.
const (
	ViewNone  View = ""
	ViewToday View = "today"
	ViewWeek  View = "week"
	ViewSort  View = "sort"
)

// OldBidDays is the window outside of which HideOldBids hides a bid.
const OldBidDays = 7

// Settings are the user preferences the controller composes filters from.
type Settings struct {
	AutoHighlight bool `json:"autoHighlight"`
	HideOldBids   bool `json:"hideOldBids"`
}

// DefaultSettings returns the settings used before any are saved.
func DefaultSettings() Settings {
	return Settings{AutoHighlight: true}
}

// SettingsUpdate represents fields that can be updated on Settings.
type SettingsUpdate struct {
	AutoHighlight *bool `json:"autoHighlight"`
	HideOldBids   *bool `json:"hideOldBids"`
}

// Apply returns s with the non-nil fields of upd applied.
func (upd SettingsUpdate) Apply(s Settings) Settings {
	if upd.AutoHighlight != nil {
		s.AutoHighlight = *upd.AutoHighlight
	}
	if upd.HideOldBids != nil {
		s.HideOldBids = *upd.HideOldBids
	}
	return s
}

// SettingsService persists user settings.
type SettingsService interface {
	// FindSettings returns the saved settings, or DefaultSettings when
	// nothing has been saved yet.
	FindSettings(ctx context.Context) (Settings, error)

	// UpdateSettings applies upd and returns the resulting settings.
	UpdateSettings(ctx context.Context, upd SettingsUpdate) (Settings, error)
}

// Session carries the state one controller works against: the active
// view, the settings in effect and the clock.
type Session struct {
	ID         string
	ActiveView View
	Settings   Settings

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewSession returns a session with a fresh ID and the given settings.
func NewSession(settings Settings) *Session {
	return &Session{
		ID:       uuid.New().String(),
		Settings: settings,
		Now:      time.Now,
	}
}

// Time returns the session clock's current time.
func (s *Session) Time() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// StatusLevel classifies a status message.
type StatusLevel string

// Status levels.
const (
	StatusInfo    StatusLevel = "info"
	StatusWarning StatusLevel = "warning"
)

// Status is the user-visible outcome of a controller operation.
type Status struct {
	Message string      `json:"message"`
	Level   StatusLevel `json:"level"`
}

// Info returns an informational status.
func Info(msg string) Status {
	return Status{Message: msg, Level: StatusInfo}
}

// Warning returns a warning status.
func Warning(msg string) Status {
	return Status{Message: msg, Level: StatusWarning}
}
