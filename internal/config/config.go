// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package config

import (
	"fmt"

	"github.com/tomtom215/tessitura/internal/validation"
)

// Config is the root application configuration.
type Config struct {
	Library LibraryConfig `koanf:"library" json:"library"`
	Output  OutputConfig  `koanf:"output" json:"output"`
	Scoring ScoringConfig `koanf:"scoring" json:"scoring"`
	Eval    EvalConfig    `koanf:"eval" json:"eval"`
	Logging LoggingConfig `koanf:"logging" json:"logging"`
}

// LibraryConfig locates the song library on disk.
type LibraryConfig struct {
	// Path is the library JSON document.
	Path string `koanf:"path" json:"path" validate:"required"`
}

// OutputConfig controls where result files land.
type OutputConfig struct {
	// Dir receives recommendation and experiment result files.
	Dir string `koanf:"dir" json:"dir" validate:"required"`
}

// ScoringConfig tunes the recommendation scoring formula.
type ScoringConfig struct {
	// Alpha weights the avoid penalty in the final score.
	Alpha float64 `koanf:"alpha" json:"alpha" validate:"gte=0"`

	// IdealBase is the baseline weight for in-range notes in the ideal
	// vector.
	IdealBase float64 `koanf:"ideal_base" json:"ideal_base" validate:"gte=0"`

	// FavoriteBoost is added to favorite notes in the ideal vector.
	FavoriteBoost float64 `koanf:"favorite_boost" json:"favorite_boost" validate:"gte=0"`

	// AvoidPenalty is added to avoid notes in the ideal vector; it must
	// not be positive.
	AvoidPenalty float64 `koanf:"avoid_penalty" json:"avoid_penalty" validate:"lte=0"`

	// Seed seeds the engine's request ID generator.
	Seed int64 `koanf:"seed" json:"seed"`
}

// EvalConfig tunes the evaluation harness.
type EvalConfig struct {
	// TopFavorites is how many top pitches become favorites in synthetic
	// profiles.
	TopFavorites int `koanf:"top_favorites" json:"top_favorites" validate:"gte=1"`

	// BottomAvoids is how many bottom pitches become avoids.
	BottomAvoids int `koanf:"bottom_avoids" json:"bottom_avoids" validate:"gte=0"`

	// MinCandidates is the minimum candidate set size for stability and
	// validity profiles.
	MinCandidates int `koanf:"min_candidates" json:"min_candidates" validate:"gte=2"`

	// StabilityBaselines is how many baselines the stability protocol
	// perturbs.
	StabilityBaselines int `koanf:"stability_baselines" json:"stability_baselines" validate:"gte=1"`

	// ValidityProfiles caps the validity protocol's profile count.
	ValidityProfiles int `koanf:"validity_profiles" json:"validity_profiles" validate:"gte=1"`

	// BootstrapSamples is the bootstrap resample count for every CI.
	BootstrapSamples int `koanf:"bootstrap_samples" json:"bootstrap_samples" validate:"gte=1"`

	// Seed seeds the bootstrap random source.
	Seed int64 `koanf:"seed" json:"seed"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `koanf:"level" json:"level" validate:"oneof=trace debug info warn error"`

	// Format is json or console.
	Format string `koanf:"format" json:"format" validate:"oneof=json console"`
}

// Validate checks the whole configuration tree.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
