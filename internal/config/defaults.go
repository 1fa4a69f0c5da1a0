package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default match configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Map: MapConfig{
			Width:  4,
			Height: 8,
		},
		Seed:            0,
		Scenario:        "skirmish",
		DefaultUnitType: "soldier",
		Lenient:         false,
		Players:         []string{"Blue", "Red"},
	}
}
