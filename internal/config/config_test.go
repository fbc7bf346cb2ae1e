package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[storage]
dir = "/tmp/spin"

[history]
search_max = 10
play_max = -1
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Storage.Dir != "/tmp/spin" {
		t.Errorf("Storage.Dir = %q, want %q", cfg.Storage.Dir, "/tmp/spin")
	}
	if cfg.History.SearchMax != 10 {
		t.Errorf("SearchMax = %d, want 10", cfg.History.SearchMax)
	}
	if cfg.History.PlayMax != -1 {
		t.Errorf("PlayMax = %d, want -1", cfg.History.PlayMax)
	}
	// Unset values fall back to defaults
	if cfg.History.FavoriteMax != 100 {
		t.Errorf("FavoriteMax = %d, want 100", cfg.History.FavoriteMax)
	}
	if cfg.History.RemovePolicy != "persist" {
		t.Errorf("RemovePolicy = %q, want %q", cfg.History.RemovePolicy, "persist")
	}

	limits := cfg.Limits()
	if limits.Search != 10 || limits.Play != -1 {
		t.Errorf("Limits() = %+v", limits)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SPIN_STORAGE_DIR", "/env/dir")
	t.Setenv("SPIN_HISTORY_SEARCH_MAX", "7")
	t.Setenv("SPIN_HISTORY_REMOVE_POLICY", "legacy")
	t.Setenv("SPIN_LOG_LEVEL", "debug")
	t.Setenv("SPIN_TAIL_INTERVAL", "not-a-number")

	cfg := &Config{}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	if cfg.Storage.Dir != "/env/dir" {
		t.Errorf("Storage.Dir = %q, want %q", cfg.Storage.Dir, "/env/dir")
	}
	if cfg.History.SearchMax != 7 {
		t.Errorf("SearchMax = %d, want 7", cfg.History.SearchMax)
	}
	if cfg.History.RemovePolicy != "legacy" {
		t.Errorf("RemovePolicy = %q, want legacy", cfg.History.RemovePolicy)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	// Invalid integers are ignored
	if cfg.Tail.Interval != 1000 {
		t.Errorf("Tail.Interval = %d, want 1000", cfg.Tail.Interval)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unbounded", func(c *Config) { c.History.SearchMax = -1 }, ""},
		{"below unbounded", func(c *Config) { c.History.PlayMax = -2 }, "play_max"},
		{"bad policy", func(c *Config) { c.History.RemovePolicy = "sometimes" }, "remove policy"},
		{"bad interval", func(c *Config) { c.Tail.Interval = -5 }, "interval"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.toml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.History != Default().History {
		t.Errorf("History = %+v, want defaults %+v", cfg.History, Default().History)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("LoadFrom() created %s", path)
	}
}

func TestLoadFromMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[history\nsearch_max ="), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() error = nil, want parse error")
	}
}

func TestValidateErrorOrderIsStable(t *testing.T) {
	cfg := Default()
	cfg.History.SearchMax = -2
	cfg.History.PlayMax = -3
	cfg.History.FavoriteMax = -4

	want := cfg.Validate().Error()
	for i := 0; i < 20; i++ {
		if got := cfg.Validate().Error(); got != want {
			t.Fatalf("Validate() = %q, want %q", got, want)
		}
	}

	search := strings.Index(want, "search_max")
	play := strings.Index(want, "play_max")
	favorite := strings.Index(want, "favorite_max")
	if !(search < play && play < favorite) {
		t.Errorf("Validate() = %q, want search_max, play_max, favorite_max in order", want)
	}
}
