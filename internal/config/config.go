// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/marathon/internal/logging"
	"github.com/javiermolinar/marathon/internal/movie"
	"github.com/javiermolinar/marathon/internal/timeutil"
	"github.com/javiermolinar/marathon/internal/tui/theme"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Search   SearchConfig   `toml:"search"`
	Catalog  CatalogConfig  `toml:"catalog"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// ScheduleConfig holds the default marathon preferences.
type ScheduleConfig struct {
	Count          int    `toml:"count"`           // movies per marathon
	BreakMinutes   int    `toml:"break_minutes"`   // minimum gap between movies
	EarliestStart  string `toml:"earliest_start"`  // "HH:MM", empty for none
	Top            int    `toml:"top"`             // schedules shown by plan
	ShowtimeFormat string `toml:"showtime_format"` // "freetext" or "list"
}

// SearchConfig bounds the schedule search.
type SearchConfig struct {
	Limit   int    `toml:"limit"`   // 0 for unlimited
	Timeout string `toml:"timeout"` // Go duration, empty for none
}

// CatalogConfig holds catalog file settings.
type CatalogConfig struct {
	Path string `toml:"path"` // used when --catalog is not given
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
	Color bool   `toml:"color"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			Count:          3,
			BreakMinutes:   15,
			EarliestStart:  "",
			Top:            5,
			ShowtimeFormat: string(movie.FormatFreeText),
		},
		Search: SearchConfig{
			Limit:   0,
			Timeout: "30s",
		},
		UI: UIConfig{
			Theme: "mocha",
			Color: true,
		},
		Log: LogConfig{
			Level: logging.DefaultLevel,
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "marathon", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Catalog.Path = expandPath(cfg.Catalog.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"MARATHON_COUNT", &cfg.Schedule.Count},
		{"MARATHON_BREAK_MINUTES", &cfg.Schedule.BreakMinutes},
		{"MARATHON_TOP", &cfg.Schedule.Top},
		{"MARATHON_SEARCH_LIMIT", &cfg.Search.Limit},
	}
	for _, o := range ints {
		v := os.Getenv(o.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", o.name, v)
		}
		*o.dst = n
	}

	if v, ok := os.LookupEnv("MARATHON_EARLIEST_START"); ok {
		cfg.Schedule.EarliestStart = v
	}
	if v := os.Getenv("MARATHON_SHOWTIME_FORMAT"); v != "" {
		cfg.Schedule.ShowtimeFormat = v
	}
	if v, ok := os.LookupEnv("MARATHON_SEARCH_TIMEOUT"); ok {
		cfg.Search.Timeout = v
	}
	if v := os.Getenv("MARATHON_CATALOG"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("MARATHON_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	// Any non-empty value disables colour, as with NO_COLOR.
	if os.Getenv("MARATHON_NO_COLOR") != "" || os.Getenv("NO_COLOR") != "" {
		cfg.UI.Color = false
	}
	if v := os.Getenv("MARATHON_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Schedule.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", c.Schedule.Count)
	}
	if c.Schedule.BreakMinutes < 0 {
		return fmt.Errorf("break_minutes must not be negative, got %d", c.Schedule.BreakMinutes)
	}
	if c.Schedule.EarliestStart != "" {
		if _, err := timeutil.TimeToMinutes(c.Schedule.EarliestStart); err != nil {
			return fmt.Errorf("earliest_start must be in HH:MM format, got %q", c.Schedule.EarliestStart)
		}
	}
	if c.Schedule.Top < 1 {
		return fmt.Errorf("top must be at least 1, got %d", c.Schedule.Top)
	}
	if _, err := movie.ParseShowtimeFormat(c.Schedule.ShowtimeFormat); err != nil {
		return fmt.Errorf("showtime_format: %w", err)
	}

	if c.Search.Limit < 0 {
		return fmt.Errorf("search limit must not be negative, got %d", c.Search.Limit)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}

	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Timeout returns the search timeout, zero when none is configured.
func (c *Config) Timeout() (time.Duration, error) {
	s := strings.TrimSpace(c.Search.Timeout)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("search timeout must be a duration like 30s, got %q", c.Search.Timeout)
	}
	if d < 0 {
		return 0, errors.New("search timeout must not be negative")
	}
	return d, nil
}

// Format returns the configured showtime input format.
func (c *Config) Format() movie.ShowtimeFormat {
	f, err := movie.ParseShowtimeFormat(c.Schedule.ShowtimeFormat)
	if err != nil {
		return movie.FormatFreeText
	}
	return f
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
