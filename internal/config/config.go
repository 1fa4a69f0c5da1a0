// Package config provides YAML-based match configuration loading.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/hexwar/internal/hex"
	"github.com/vovakirdan/hexwar/internal/world"
)

// GameConfig contains everything needed to start a match.
type GameConfig struct {
	Map             MapConfig `yaml:"map"`
	Seed            int64     `yaml:"seed"`     // 0 = time-based
	Scenario        string    `yaml:"scenario"` // Registered scenario id
	DefaultUnitType string    `yaml:"default_unit_type"`
	RulesPath       string    `yaml:"rules_path"` // Empty = built-in rules
	Lenient         bool      `yaml:"lenient"`
	Players         []string  `yaml:"players"`
}

// MapConfig sets the map dimensions. Zero values mean the scenario's size.
type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Size returns the map size as a hex.Size.
func (m MapConfig) Size() hex.Size {
	return hex.Size{W: m.Width, H: m.Height}
}

// IsSet reports whether the config overrides the scenario's map size.
func (m MapConfig) IsSet() bool {
	return m.Width != 0 || m.Height != 0
}

// Validate checks the config for values no match can start with.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Map.IsSet() && (c.Map.Width <= 0 || c.Map.Height <= 0) {
		errs = append(errs, fmt.Errorf("map size %dx%d must be positive", c.Map.Width, c.Map.Height))
	}
	if c.Scenario == "" {
		errs = append(errs, errors.New("scenario is required"))
	}
	if len(c.Players) > world.NumPlayers {
		errs = append(errs, fmt.Errorf("%d player names given, at most %d players", len(c.Players), world.NumPlayers))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
