package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/bidfilter"
	main "github.com/fwojciec/bidfilter/cmd/bidfilter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults for a missing file", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))

		require.NoError(t, err)
		assert.Equal(t, main.DefaultConfig(), cfg)
	})

	t.Run("fills missing fields from defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "card_hints:\n  - .tender-row\npoll_interval: 250ms\ntimezone: Asia/Kolkata\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cfg, err := main.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, []string{".tender-row"}, cfg.CardHints)
		assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
		assert.Equal(t, main.DefaultConfig().DebounceWindow, cfg.DebounceWindow)
		assert.Equal(t, "text", cfg.Format)

		loc, err := cfg.Location()
		require.NoError(t, err)
		assert.Equal(t, "Asia/Kolkata", loc.String())
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("poll_interval: [1"), 0o644))

		_, err := main.LoadConfig(path)

		require.Error(t, err)
		assert.Equal(t, bidfilter.EINVALID, bidfilter.ErrorCode(err))
	})

	t.Run("rejects an unknown timezone", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("timezone: Mars/Olympus\n"), 0o644))

		_, err := main.LoadConfig(path)

		require.Error(t, err)
		assert.Equal(t, bidfilter.EINVALID, bidfilter.ErrorCode(err))
	})
}

func TestHome(t *testing.T) {
	t.Run("respects BIDFILTER_HOME", func(t *testing.T) {
		t.Setenv("BIDFILTER_HOME", "/srv/bidfilter")

		assert.Equal(t, "/srv/bidfilter", main.Home())
	})

	t.Run("derives the database path from home", func(t *testing.T) {
		t.Setenv("BIDFILTER_HOME", "/srv/bidfilter")
		t.Setenv("BIDFILTER_DB", "")

		assert.Equal(t, filepath.Join("/srv/bidfilter", "bidfilter.db"), main.NewMain().DBPath)
	})

	t.Run("respects BIDFILTER_DB", func(t *testing.T) {
		t.Setenv("BIDFILTER_DB", "/tmp/other.db")

		assert.Equal(t, "/tmp/other.db", main.NewMain().DBPath)
	})
}
