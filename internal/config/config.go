// ABOUTME: TOML configuration for the relay listener
// ABOUTME: Loads a config file, applies defaults, and validates values
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds listener configuration
type Config struct {
	// Endpoint is the fixed WebSocket endpoint. When empty, the listener
	// resolves it via mDNS discovery.
	Endpoint string `toml:"endpoint"`

	// Name is the listener's display name. Defaults to hostname-derived.
	Name string `toml:"name"`

	// AuthToken, when set, is sent as a bearer token with the handshake.
	AuthToken string `toml:"auth_token"`

	// RetryBase is the exponent base for reconnect backoff.
	RetryBase float64 `toml:"retry_base"`

	// RetryUnitMs is the backoff time unit in milliseconds.
	RetryUnitMs int `toml:"retry_unit_ms"`

	// BackgroundSentinel and ForegroundSentinel are the control payloads
	// that start and stop the looping alert.
	BackgroundSentinel string `toml:"background_sentinel"`
	ForegroundSentinel string `toml:"foreground_sentinel"`

	// AlertSound is the path to the MP3 played while alerting.
	AlertSound string `toml:"alert_sound"`

	// Volume is the alert volume (0-100).
	Volume int `toml:"volume"`

	LogFile string `toml:"log_file"`
	NoTUI   bool   `toml:"no_tui"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RetryBase:          2,
		RetryUnitMs:        1000,
		BackgroundSentinel: "background",
		ForegroundSentinel: "foreground",
		AlertSound:         "alert.mp3",
		Volume:             100,
		LogFile:            "relay-listener.log",
	}
}

// Load reads a TOML config file and merges it over the defaults. An
// empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants the supervisor and alerter rely on.
func Validate(cfg Config) error {
	if cfg.RetryBase < 1 {
		return fmt.Errorf("retry_base must be >= 1, got %v", cfg.RetryBase)
	}
	if cfg.RetryUnitMs <= 0 {
		return fmt.Errorf("retry_unit_ms must be positive, got %d", cfg.RetryUnitMs)
	}
	if cfg.Volume < 0 || cfg.Volume > 100 {
		return fmt.Errorf("volume must be 0-100, got %d", cfg.Volume)
	}
	if strings.TrimSpace(cfg.BackgroundSentinel) == "" {
		return fmt.Errorf("background_sentinel must not be empty")
	}
	if strings.TrimSpace(cfg.ForegroundSentinel) == "" {
		return fmt.Errorf("foreground_sentinel must not be empty")
	}
	if cfg.BackgroundSentinel == cfg.ForegroundSentinel {
		return fmt.Errorf("background and foreground sentinels must differ")
	}
	if cfg.Endpoint != "" && !strings.HasPrefix(cfg.Endpoint, "ws://") && !strings.HasPrefix(cfg.Endpoint, "wss://") {
		return fmt.Errorf("endpoint must be a ws:// or wss:// URL, got %q", cfg.Endpoint)
	}
	return nil
}

// RetryUnit returns the backoff unit as a duration.
func (c Config) RetryUnit() time.Duration {
	return time.Duration(c.RetryUnitMs) * time.Millisecond
}
