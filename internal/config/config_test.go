package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "limit = 5\n\n[ui]\ntheme = \"dracula\"\n")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg.Limit != 5 {
		t.Errorf("Limit = %d, want 5", cfg.Limit)
	}
	if cfg.UI.Theme != "dracula" {
		t.Errorf("UI.Theme = %q, want dracula", cfg.UI.Theme)
	}
	// Unset keys keep their defaults.
	if cfg.DebounceMS != 150 {
		t.Errorf("DebounceMS = %d, want 150", cfg.DebounceMS)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTLHours != 24 {
		t.Errorf("Cache = %+v, want enabled with 24h TTL", cfg.Cache)
	}
	if cfg.UI.Filter != "substring" {
		t.Errorf("UI.Filter = %q, want substring", cfg.UI.Filter)
	}
}

func TestLoad_InvalidTOMLIsError(t *testing.T) {
	path := writeConfig(t, "limit = [broken\n")

	if _, err := loadFrom(path); err == nil {
		t.Error("loadFrom() should fail on invalid TOML")
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"zero limit", "limit = 0\n"},
		{"negative debounce", "debounce_ms = -1\n"},
		{"zero timeout", "timeout_ms = 0\n"},
		{"bad theme", "[ui]\ntheme = \"solarized\"\n"},
		{"bad filter", "[ui]\nfilter = \"regex\"\n"},
		{"zero cache ttl", "[cache]\nttl_hours = 0\n"},
		{"zero history size", "[history]\nsize = 0\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			if _, err := loadFrom(path); err == nil {
				t.Errorf("loadFrom(%q) should fail validation", tc.content)
			}
		})
	}
}

func TestLoad_ExpandsTildePaths(t *testing.T) {
	path := writeConfig(t, "[cache]\npath = \"~/cache/sugg.json\"\n\n[dict]\npath = \"~/words.txt\"\n")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if want := filepath.Join(home, "cache", "sugg.json"); cfg.Cache.Path != want {
		t.Errorf("Cache.Path = %q, want %q", cfg.Cache.Path, want)
	}
	if want := filepath.Join(home, "words.txt"); cfg.Dict.Path != want {
		t.Errorf("Dict.Path = %q, want %q", cfg.Dict.Path, want)
	}
}

func TestDurations(t *testing.T) {
	cfg := Default()
	if cfg.Debounce() != 150*time.Millisecond {
		t.Errorf("Debounce() = %v, want 150ms", cfg.Debounce())
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", cfg.Timeout())
	}
	if cfg.Cache.TTL() != 24*time.Hour {
		t.Errorf("Cache.TTL() = %v, want 24h", cfg.Cache.TTL())
	}
}

func TestDefaultConfigTextParses(t *testing.T) {
	// The commented template, with nothing uncommented, must load as
	// pure defaults.
	path := writeConfig(t, DefaultConfigText())

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom(default template) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if !strings.Contains(DefaultConfigText(), "debounce_ms") {
		t.Error("template should document debounce_ms")
	}
}
