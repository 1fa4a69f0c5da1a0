package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexwar/internal/config"
	"github.com/vovakirdan/hexwar/internal/core"
	"github.com/vovakirdan/hexwar/internal/rules"
	"github.com/vovakirdan/hexwar/internal/scenario"
)

// loadConfig loads the match config and applies command line overrides.
func loadConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("scenario") {
		cfg.Scenario = flagScenario
	}
	if flags.Changed("lenient") {
		cfg.Lenient = flagLenient
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if !scenario.Exists(cfg.Scenario) {
		return cfg, fmt.Errorf("unknown scenario %q, run 'hexwar scenarios' to list them", cfg.Scenario)
	}
	return cfg, nil
}

// newGame builds a core from the config and deploys its scenario.
// A zero seed is replaced with a time-based one. A nil logger discards.
func newGame(cfg config.GameConfig, seed int64, logger *log.Logger) (*core.Core, string, error) {
	types, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return nil, "", err
	}
	if cfg.DefaultUnitType != "" {
		if _, ok := types.LookupUnitType(cfg.DefaultUnitType); !ok {
			return nil, "", fmt.Errorf("default unit type %q is not in the rules", cfg.DefaultUnitType)
		}
	}
	sc, err := scenario.Get(cfg.Scenario)
	if err != nil {
		return nil, "", err
	}

	size := sc.MapSize
	if cfg.Map.IsSet() {
		size = cfg.Map.Size()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := core.New(core.Options{
		MapSize:         size,
		Types:           types,
		DefaultUnitType: cfg.DefaultUnitType,
		PlayerNames:     cfg.Players,
		Seed:            seed,
		Logger:          logger,
		Lenient:         cfg.Lenient,
	})
	if err := scenario.Apply(c, sc); err != nil {
		return nil, "", err
	}
	if logger != nil {
		logger.Debug("match set up", "scenario", sc.ID, "map", size, "seed", seed)
	}
	return c, sc.ID, nil
}
