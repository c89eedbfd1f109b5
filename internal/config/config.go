// Package config loads the CLI settings: built-in defaults, then an optional
// YAML file, then FUNNELPLAN_* environment variables. Flags are applied by
// the caller on top.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// DefaultStorePath is the sqlite database used when none is configured.
const DefaultStorePath = "funnelplan.db"

// Config holds the CLI settings.
type Config struct {
	Store         string            `yaml:"store" env:"FUNNELPLAN_STORE"`
	StorePath     string            `yaml:"store_path" env:"FUNNELPLAN_STORE_PATH"`
	Theme         string            `yaml:"theme" env:"FUNNELPLAN_THEME"`
	Variant       string            `yaml:"variant" env:"FUNNELPLAN_THEME_VARIANT"`
	AssetPrefix   string            `yaml:"asset_prefix" env:"FUNNELPLAN_ASSET_PREFIX"`
	Tokens        map[string]string `yaml:"tokens" env:"FUNNELPLAN_THEME_TOKENS"`
	FeedbackDelay time.Duration     `yaml:"feedback_delay" env:"FUNNELPLAN_FEEDBACK_DELAY"`
	LogLevel      string            `yaml:"log_level" env:"FUNNELPLAN_LOG_LEVEL"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Store:         StoreSQLite,
		StorePath:     DefaultStorePath,
		Theme:         "default",
		Variant:       "light",
		AssetPrefix:   "assets",
		FeedbackDelay: 4 * time.Second,
		LogLevel:      "info",
	}
}

// Load layers the YAML file at path (skipped when empty) and the
// environment over Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Overlay(&cfg, data); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Overlay decodes a YAML document over cfg. Keys absent from the document
// keep their current values.
func Overlay(cfg *Config, data []byte) error {
	if cfg == nil {
		return errors.New("config: overlay target is nil")
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

// Validate rejects unknown store drivers and log levels.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("config: unknown store %q (want %s or %s)", c.Store, StoreMemory, StoreSQLite)
	}
	if c.Store == StoreSQLite && strings.TrimSpace(c.StorePath) == "" {
		return errors.New("config: sqlite store requires a path")
	}
	if c.FeedbackDelay < 0 {
		return fmt.Errorf("config: negative feedback delay %s", c.FeedbackDelay)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// AssetURL joins AssetPrefix and an asset key.
func (c Config) AssetURL(key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimRight(c.AssetPrefix, "/") + "/" + strings.TrimLeft(key, "/")
}
