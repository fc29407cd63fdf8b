// Package config loads game settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"

	"github.com/appengine-ltd/lemonade-stand/internal/game"
)

// ErrInvalidConfig is shared with the game package so either layer's rejection matches.
var ErrInvalidConfig = game.ErrInvalidConfig

type Config struct {
	Seed         int64           `yaml:"seed"`
	StartingCash decimal.Decimal `yaml:"starting_cash"`
	RunLength    RunLength       `yaml:"run_length"`
	LogLevel     string          `yaml:"log_level"`
	History      bool            `yaml:"history"`
}

type RunLength struct {
	OpenEnded bool `yaml:"open_ended"`
	Days      int  `yaml:"days"`
}

// fileConfig mirrors Config with optional fields so unset keys keep defaults.
type fileConfig struct {
	Seed         *int64     `yaml:"seed"`
	StartingCash *cashValue `yaml:"starting_cash"`
	RunLength    *RunLength `yaml:"run_length"`
	LogLevel     *string    `yaml:"log_level"`
	History      *bool      `yaml:"history"`
}

// cashValue reads a YAML scalar such as 25.5 or "25.50" straight into a decimal.
type cashValue decimal.Decimal

func (c *cashValue) UnmarshalYAML(b []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(b)), `"'`)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%w: starting_cash %q is not a number", ErrInvalidConfig, raw)
	}
	*c = cashValue(d)
	return nil
}

func (f fileConfig) apply(cfg *Config) {
	if f.Seed != nil {
		cfg.Seed = *f.Seed
	}
	if f.StartingCash != nil {
		cfg.StartingCash = decimal.Decimal(*f.StartingCash)
	}
	if f.RunLength != nil {
		cfg.RunLength = *f.RunLength
	}
	if f.LogLevel != nil {
		cfg.LogLevel = *f.LogLevel
	}
	if f.History != nil {
		cfg.History = *f.History
	}
}

func Default() Config {
	return Config{
		StartingCash: game.DefaultStartingCash,
		RunLength:    RunLength{OpenEnded: true},
		LogLevel:     "warn",
		History:      true,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	file.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.StartingCash.IsNegative() {
		return fmt.Errorf("%w: starting_cash must not be negative", ErrInvalidConfig)
	}
	if !c.StartingCash.Equal(c.StartingCash.Round(2)) {
		return fmt.Errorf("%w: starting_cash %s is not whole cents", ErrInvalidConfig, c.StartingCash)
	}
	if c.RunLength.Days < 0 {
		return fmt.Errorf("%w: run_length.days must not be negative", ErrInvalidConfig)
	}
	if !c.RunLength.OpenEnded && c.RunLength.Days == 0 {
		return fmt.Errorf("%w: run_length needs open_ended or days", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// GameConfig converts the file settings into the game's own config.
func (c Config) GameConfig() game.GameConfig {
	return game.GameConfig{
		Seed:         c.Seed,
		StartingCash: c.StartingCash,
		RunLength: game.RunLength{
			OpenEnded: c.RunLength.OpenEnded,
			Days:      c.RunLength.Days,
		},
	}
}
