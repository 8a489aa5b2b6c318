package engine

import (
	"errors"
	"fmt"

	"github.com/wildfunctions/graphsuggest/pkg/pool"
	"github.com/wildfunctions/graphsuggest/pkg/strategy"
	"github.com/wildfunctions/graphsuggest/pkg/suggestion"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid engine config")

// Config holds all parameters for an evolutionary run.
type Config struct {
	Strategy        string             `json:"strategy" yaml:"strategy"`
	Catalogue       string             `json:"catalogue" yaml:"catalogue"`
	Population      int                `json:"population" yaml:"population"`
	Generations     int                `json:"generations" yaml:"generations"`
	StagnationLimit int                `json:"stagnation" yaml:"stagnation"`
	MutationRate    float64            `json:"mutation_rate" yaml:"mutation_rate"`
	TournamentSize  int                `json:"tournament_size" yaml:"tournament_size"`
	Seed            int64              `json:"seed" yaml:"seed"`
	Verbose         bool               `json:"verbose" yaml:"verbose"`
	Weights         suggestion.Weights `json:"weights" yaml:"weights"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Strategy:        "tournament",
		Catalogue:       pool.DefaultCatalogue,
		Population:      30,
		Generations:     60,
		StagnationLimit: 12,
		MutationRate:    0.1,
		TournamentSize:  3,
		Seed:            0, // 0 = random
		Verbose:         false,
		Weights:         suggestion.DefaultWeights(),
	}
}

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	if c.Population < 2 {
		return fmt.Errorf("%w: population %d, need at least 2", ErrInvalidConfig, c.Population)
	}
	if c.Generations < 1 {
		return fmt.Errorf("%w: generations %d, need at least 1", ErrInvalidConfig, c.Generations)
	}
	if c.StagnationLimit < 0 {
		return fmt.Errorf("%w: stagnation %d is negative", ErrInvalidConfig, c.StagnationLimit)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("%w: mutation rate %v outside [0, 1]", ErrInvalidConfig, c.MutationRate)
	}
	if c.TournamentSize < 0 {
		return fmt.Errorf("%w: tournament size %d is negative", ErrInvalidConfig, c.TournamentSize)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := strategy.Get(c.Strategy, strategy.Params{}); err != nil {
		return fmt.Errorf("%w: %v (available: %v)", ErrInvalidConfig, err, strategy.Names())
	}
	if _, err := pool.Get(c.Catalogue); err != nil {
		return fmt.Errorf("%w: %v (available: %v)", ErrInvalidConfig, err, pool.Names())
	}
	return nil
}
