// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package recommend

import "fmt"

// Config contains all configuration for the scoring engine.
type Config struct {
	// Alpha weights the avoid penalty in the final score:
	// final = cosine - Alpha*avoid_penalty.
	Alpha float64 `json:"alpha"`

	// Ideal contains the ideal-vector weights.
	Ideal IdealConfig `json:"ideal"`

	// Seed is the random seed for request ID generation.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Alpha: 0.5,
		Ideal: DefaultIdealConfig(),
		Seed:  42,
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Alpha < 0 {
		return fmt.Errorf("alpha must be non-negative, got %v", c.Alpha)
	}
	if c.Ideal.Base < 0 {
		return fmt.Errorf("ideal base weight must be non-negative, got %v", c.Ideal.Base)
	}
	if c.Ideal.FavoriteBoost < 0 {
		return fmt.Errorf("favorite boost must be non-negative, got %v", c.Ideal.FavoriteBoost)
	}
	if c.Ideal.AvoidPenalty > 0 {
		return fmt.Errorf("avoid penalty must be non-positive, got %v", c.Ideal.AvoidPenalty)
	}
	return nil
}
