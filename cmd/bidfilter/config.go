package main

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/bidfilter"
	"github.com/fwojciec/bidfilter/watch"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings read from $BIDFILTER_HOME/config.yaml.
type Config struct {
	// CardHints are extra card selectors tried after the built-in ones.
	CardHints []string `yaml:"card_hints,omitempty"`

	// Timezone is the IANA zone listing dates are read in. Empty means local.
	Timezone string `yaml:"timezone,omitempty"`

	// Format is the report format used when extract gets no --format.
	Format string `yaml:"format"`

	DebounceWindow time.Duration `yaml:"debounce_window"`
	PollInterval   time.Duration `yaml:"poll_interval"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Format:         "text",
		DebounceWindow: watch.DefaultWindow,
		PollInterval:   watch.DefaultInterval,
	}
}

// Location returns the zone dates are interpreted in.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, bidfilter.Errorf(bidfilter.EINVALID, "unknown timezone %q", c.Timezone)
	}
	return loc, nil
}

// LoadConfig reads the config file at path. A missing file yields
// DefaultConfig; missing fields are filled from defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, bidfilter.Errorf(bidfilter.EINVALID, "invalid config %s: %s", path, err)
	}
	if cfg.DebounceWindow <= 0 {
		cfg.DebounceWindow = watch.DefaultWindow
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = watch.DefaultInterval
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Home returns the BIDFILTER_HOME path, respecting the BIDFILTER_HOME env var.
func Home() string {
	if h := os.Getenv("BIDFILTER_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bidfilter")
	}
	return filepath.Join(home, ".bidfilter")
}

func defaultDBPath(home string) string {
	if path := os.Getenv("BIDFILTER_DB"); path != "" {
		return path
	}
	return filepath.Join(home, "bidfilter.db")
}

// loadEnv loads .env from the working directory when there is one.
// Variables already set in the environment win.
func loadEnv() error {
	err := godotenv.Load()
	if errors.Is(err, iofs.ErrNotExist) {
		return nil
	}
	return err
}
