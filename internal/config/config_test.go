// ABOUTME: Tests for listener configuration loading
// ABOUTME: Tests defaults, TOML parsing, and validation rules
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.RetryBase != 2 {
		t.Errorf("expected retry base 2, got %v", cfg.RetryBase)
	}
	if cfg.RetryUnit() != time.Second {
		t.Errorf("expected retry unit 1s, got %v", cfg.RetryUnit())
	}
	if cfg.BackgroundSentinel != "background" {
		t.Errorf("expected background sentinel, got %q", cfg.BackgroundSentinel)
	}
	if cfg.ForegroundSentinel != "foreground" {
		t.Errorf("expected foreground sentinel, got %q", cfg.ForegroundSentinel)
	}
	if cfg.Volume != 100 {
		t.Errorf("expected default volume 100, got %d", cfg.Volume)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Error("expected defaults for empty path")
	}
}

func TestLoadTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "listener.toml")
	content := `
endpoint = "wss://relay.example.com/stream"
name = "depot-7"
retry_base = 1.5
retry_unit_ms = 250
background_sentinel = "app/background"
foreground_sentinel = "app/foreground"
volume = 60
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Endpoint != "wss://relay.example.com/stream" {
		t.Errorf("unexpected endpoint: %q", cfg.Endpoint)
	}
	if cfg.Name != "depot-7" {
		t.Errorf("unexpected name: %q", cfg.Name)
	}
	if cfg.RetryBase != 1.5 {
		t.Errorf("unexpected retry base: %v", cfg.RetryBase)
	}
	if cfg.RetryUnit() != 250*time.Millisecond {
		t.Errorf("unexpected retry unit: %v", cfg.RetryUnit())
	}
	if cfg.BackgroundSentinel != "app/background" {
		t.Errorf("unexpected background sentinel: %q", cfg.BackgroundSentinel)
	}

	// Unset fields keep their defaults.
	if cfg.AlertSound != "alert.mp3" {
		t.Errorf("expected default alert sound, got %q", cfg.AlertSound)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/listener.toml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"retry base below one", func(c *Config) { c.RetryBase = 0.9 }},
		{"zero retry unit", func(c *Config) { c.RetryUnitMs = 0 }},
		{"negative volume", func(c *Config) { c.Volume = -1 }},
		{"volume above 100", func(c *Config) { c.Volume = 101 }},
		{"empty background sentinel", func(c *Config) { c.BackgroundSentinel = " " }},
		{"empty foreground sentinel", func(c *Config) { c.ForegroundSentinel = "" }},
		{"identical sentinels", func(c *Config) {
			c.BackgroundSentinel = "x"
			c.ForegroundSentinel = "x"
		}},
		{"non-websocket endpoint", func(c *Config) { c.Endpoint = "http://relay.example.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
