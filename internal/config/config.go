package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/okessler/sugg/internal/suggest"
)

// Valid values for ui.theme and ui.filter.
var (
	ValidThemeNames = []string{"default", "dracula", "none"}
	ValidFilters    = []string{"substring", "fuzzy"}
)

// CacheConfig controls the on-disk suggestion cache.
type CacheConfig struct {
	Enabled  bool   `toml:"enabled"`
	TTLHours int    `toml:"ttl_hours"`
	Path     string `toml:"path"` // empty = default location
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// DictConfig points at an optional local word list for --offline.
// When empty, the built-in list is used.
type DictConfig struct {
	Path string `toml:"path"`
}

// HistoryConfig controls pick history.
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
	Size    int  `toml:"size"`
}

// UIConfig holds picker appearance settings.
type UIConfig struct {
	Theme       string `toml:"theme"`
	Filter      string `toml:"filter"` // "substring" or "fuzzy"
	Placeholder string `toml:"placeholder"`
}

// Config holds the sugg configuration.
type Config struct {
	Endpoint   string `toml:"endpoint"`
	TimeoutMS  int    `toml:"timeout_ms"`
	Limit      int    `toml:"limit"`
	DebounceMS int    `toml:"debounce_ms"`

	Cache   CacheConfig   `toml:"cache"`
	Dict    DictConfig    `toml:"dict"`
	History HistoryConfig `toml:"history"`
	UI      UIConfig      `toml:"ui"`
}

// Timeout returns the suggestion request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Debounce returns the fetch debounce window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Endpoint:   suggest.DefaultEndpoint,
		TimeoutMS:  int(suggest.DefaultTimeout / time.Millisecond),
		Limit:      10,
		DebounceMS: 150,
		Cache: CacheConfig{
			Enabled:  true,
			TTLHours: 24,
		},
		History: HistoryConfig{
			Enabled: true,
			Size:    50,
		},
		UI: UIConfig{
			Theme:       "default",
			Filter:      "substring",
			Placeholder: "type to search…",
		},
	}
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sugg", "config.toml"), nil
}

// expandPath expands a leading ~ to the user's home directory.
// Shells don't expand ~ inside config files.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Load reads config from ~/.config/sugg/config.toml.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Default(), fmt.Errorf("read config file: %w", err)
	}

	// Decoding over the defaults leaves unset keys at their default.
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Default(), err
	}

	if cfg.Cache.Path, err = expandPath(cfg.Cache.Path); err != nil {
		return Default(), fmt.Errorf("expand cache.path: %w", err)
	}
	if cfg.Dict.Path, err = expandPath(cfg.Dict.Path); err != nil {
		return Default(), fmt.Errorf("expand dict.path: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Limit < 1 {
		return fmt.Errorf("invalid limit %d: must be at least 1", c.Limit)
	}
	if c.TimeoutMS < 1 {
		return fmt.Errorf("invalid timeout_ms %d: must be at least 1", c.TimeoutMS)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("invalid debounce_ms %d: must not be negative", c.DebounceMS)
	}
	if c.Cache.TTLHours < 1 {
		return fmt.Errorf("invalid cache.ttl_hours %d: must be at least 1", c.Cache.TTLHours)
	}
	if c.History.Size < 1 {
		return fmt.Errorf("invalid history.size %d: must be at least 1", c.History.Size)
	}
	if !slices.Contains(ValidThemeNames, c.UI.Theme) {
		return fmt.Errorf("invalid ui.theme %q: must be one of %v", c.UI.Theme, ValidThemeNames)
	}
	if !slices.Contains(ValidFilters, c.UI.Filter) {
		return fmt.Errorf("invalid ui.filter %q: must be one of %v", c.UI.Filter, ValidFilters)
	}
	return nil
}

const defaultConfig = `# sugg configuration

# Suggestion endpoint (Datamuse /sug compatible)
# endpoint = "https://api.datamuse.com/sug"

# Request timeout in milliseconds
# timeout_ms = 5000

# Maximum number of suggestions per query
# limit = 10

# Delay in milliseconds between the last keystroke and the fetch
# debounce_ms = 150

# On-disk suggestion cache
# [cache]
# enabled = true
# ttl_hours = 24
# path = "~/.cache/sugg/suggestions.json"

# Local word list for --offline (one word per line, optional TAB rank)
# [dict]
# path = "~/.local/share/sugg/words.txt"

# Pick history shown by "sugg history"
# [history]
# enabled = true
# size = 50

# Picker appearance
# [ui]
# theme = "default"        # default, dracula, or none
# filter = "substring"     # substring or fuzzy
# placeholder = "type to search…"
`

// Init creates a default config file at ~/.config/sugg/config.toml.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}

	return path, nil
}

// DefaultConfigText returns the commented default config template.
func DefaultConfigText() string {
	return defaultConfig
}
