package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/bidfilter"
)

// Compile-time interface verification.
var _ bidfilter.SettingsService = (*SettingsService)(nil)

// SettingsService implements bidfilter.SettingsService using SQLite. The
// settings live in a single row that is created on first update.
type SettingsService struct {
	db *DB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *DB) *SettingsService {
	return &SettingsService{db: db}
}

// querier is satisfied by both *DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// FindSettings returns the saved settings, or the defaults when none are saved.
func (s *SettingsService) FindSettings(ctx context.Context) (bidfilter.Settings, error) {
	return findSettings(ctx, s.db)
}

func findSettings(ctx context.Context, q querier) (bidfilter.Settings, error) {
	var settings bidfilter.Settings
	err := q.QueryRowContext(ctx, `
		SELECT auto_highlight, hide_old_bids
		FROM settings
		WHERE id = 1
	`).Scan(&settings.AutoHighlight, &settings.HideOldBids)

	if errors.Is(err, sql.ErrNoRows) {
		return bidfilter.DefaultSettings(), nil
	}
	if err != nil {
		return bidfilter.Settings{}, err
	}
	return settings, nil
}

// UpdateSettings applies upd to the saved settings and returns the result.
func (s *SettingsService) UpdateSettings(ctx context.Context, upd bidfilter.SettingsUpdate) (bidfilter.Settings, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return bidfilter.Settings{}, err
	}
	defer tx.Rollback()

	current, err := findSettings(ctx, tx)
	if err != nil {
		return bidfilter.Settings{}, err
	}
	settings := upd.Apply(current)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO settings (id, auto_highlight, hide_old_bids, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			auto_highlight = excluded.auto_highlight,
			hide_old_bids = excluded.hide_old_bids,
			updated_at = excluded.updated_at
	`, settings.AutoHighlight, settings.HideOldBids, s.db.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return bidfilter.Settings{}, err
	}

	if err := tx.Commit(); err != nil {
		return bidfilter.Settings{}, err
	}
	return settings, nil
}
