package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// RuntimeConfig carries the settings read once at startup from the
// environment. Board dimensions and the gravity cadence are configuration,
// not constants.
type RuntimeConfig struct {
	Width        int           `env:"PYBLOCKS_WIDTH" envDefault:"10"`
	Height       int           `env:"PYBLOCKS_HEIGHT" envDefault:"19"`
	TickInterval time.Duration `env:"PYBLOCKS_TICK" envDefault:"1s"`
	ScoreAPIURL  string        `env:"PYBLOCKS_SCORE_API_URL"`
	ScoreAPIKey  string        `env:"PYBLOCKS_SCORE_API_KEY"`
	ScoreSync    bool          `env:"PYBLOCKS_SCORE_SYNC"`
}

func LoadRuntimeConfig() (RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	// A quad spawns across columns 3..6 of the top two rows; anything
	// smaller cannot host a spawn region.
	if cfg.Width < 7 || cfg.Height < 2 {
		return cfg, fmt.Errorf("board %dx%d is too small", cfg.Width, cfg.Height)
	}
	if cfg.TickInterval <= 0 {
		return cfg, fmt.Errorf("tick interval must be positive, got %v", cfg.TickInterval)
	}
	return cfg, nil
}
