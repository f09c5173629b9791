// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/jmylchreest/themetoggle/internal/prefs"
	"github.com/jmylchreest/themetoggle/internal/ui"
)

// Default configuration values.
const (
	DefaultDetector     = DetectorPortal
	DefaultLanguage     = "en"
	DefaultPollInterval = 30 * time.Second
)

// Detector names accepted by [system] detector.
const (
	DetectorPortal = "portal"
	DetectorEnv    = "env"
	DetectorNone   = "none"
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "5s", "1m", "1h30m", or integer milliseconds.
// A value of "0" disables polling.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML and env parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '1m', '1h30m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config represents the themetoggle configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	System  SystemConfig  `toml:"system"`
}

// StorageConfig selects where preferences are kept.
type StorageConfig struct {
	Origin  string `toml:"origin" env:"THEMETOGGLE_ORIGIN"`     // One preference file per origin
	DataDir string `toml:"data_dir" env:"THEMETOGGLE_DATA_DIR"` // Empty = $XDG_DATA_HOME/themetoggle
}

// UIConfig holds front-end settings.
type UIConfig struct {
	Shortcut     string `toml:"shortcut" env:"THEMETOGGLE_SHORTCUT"`
	Language     string `toml:"language" env:"THEMETOGGLE_LANGUAGE"`
	ShowPreviews bool   `toml:"show_previews"`
}

// SystemConfig controls OS color-scheme detection.
type SystemConfig struct {
	Detector     string   `toml:"detector" env:"THEMETOGGLE_DETECTOR"` // portal, env, none
	PollInterval Duration `toml:"poll_interval"`                       // Used by watch when signals are unavailable
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Origin: prefs.DefaultOrigin,
		},
		UI: UIConfig{
			Shortcut:     ui.DefaultShortcut,
			Language:     DefaultLanguage,
			ShowPreviews: true,
		},
		System: SystemConfig{
			Detector:     DefaultDetector,
			PollInterval: Duration(DefaultPollInterval),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "themetoggle", "config.toml")
}

// LoadConfig loads configuration from the specified path and applies
// THEMETOGGLE_* environment overrides on top.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if c.Storage.Origin == "" {
		c.Storage.Origin = prefs.DefaultOrigin
	}
	switch c.System.Detector {
	case DetectorPortal, DetectorEnv, DetectorNone:
	case "":
		c.System.Detector = DefaultDetector
	default:
		return fmt.Errorf("invalid system.detector %q: must be portal, env or none", c.System.Detector)
	}
	if c.UI.Shortcut == "" {
		c.UI.Shortcut = ui.DefaultShortcut
	}
	if _, err := ui.ParseShortcut(c.UI.Shortcut); err != nil {
		return fmt.Errorf("invalid ui.shortcut: %w", err)
	}
	if c.UI.Language == "" {
		c.UI.Language = DefaultLanguage
	}
	if _, err := language.Parse(c.UI.Language); err != nil {
		return fmt.Errorf("invalid ui.language %q: %w", c.UI.Language, err)
	}
	if c.System.PollInterval < 0 {
		return fmt.Errorf("invalid system.poll_interval %s: must not be negative", c.System.PollInterval.Duration())
	}
	return nil
}

// LanguageTag returns the parsed ui.language, falling back to English.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.UI.Language)
	if err != nil {
		return language.English
	}
	return tag
}

// Shortcut returns the parsed ui.shortcut, falling back to the default.
func (c *Config) Shortcut() ui.Shortcut {
	sc, err := ui.ParseShortcut(c.UI.Shortcut)
	if err != nil {
		return ui.MustParseShortcut(ui.DefaultShortcut)
	}
	return sc
}

// StoragePath returns the preference file for the configured origin.
func (c *Config) StoragePath() (string, error) {
	dir := c.Storage.DataDir
	if dir == "" {
		var err error
		dir, err = prefs.DataDir()
		if err != nil {
			return "", err
		}
	}
	return prefs.OriginPath(dir, c.Storage.Origin), nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
