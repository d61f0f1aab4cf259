// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package eval

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tessitura/internal/library"
	"github.com/tomtom215/tessitura/internal/recommend"
)

// Config holds the evaluation harness tunables.
type Config struct {
	// TopFavorites is how many top pitches become favorites in a
	// synthetic profile.
	TopFavorites int `json:"top_favorites" koanf:"top_favorites"`

	// BottomAvoids is how many bottom pitches become avoids.
	BottomAvoids int `json:"bottom_avoids" koanf:"bottom_avoids"`

	// MinCandidates is the minimum filtered candidate set size for a
	// profile to qualify for the stability and validity protocols.
	MinCandidates int `json:"min_candidates" koanf:"min_candidates"`

	// StabilityBaselines is how many baseline profiles the stability
	// protocol perturbs.
	StabilityBaselines int `json:"stability_baselines" koanf:"stability_baselines"`

	// ValidityProfiles caps how many profiles the validity protocol runs.
	ValidityProfiles int `json:"validity_profiles" koanf:"validity_profiles"`

	// BootstrapSamples is the bootstrap resample count for every CI.
	BootstrapSamples int `json:"bootstrap_samples" koanf:"bootstrap_samples"`

	// Seed seeds the bootstrap random source. Each protocol run gets a
	// fresh generator from this seed, so protocols are independently
	// reproducible regardless of execution order.
	Seed int64 `json:"seed" koanf:"seed"`
}

// DefaultConfig returns the standard evaluation settings.
func DefaultConfig() *Config {
	return &Config{
		TopFavorites:       4,
		BottomAvoids:       2,
		MinCandidates:      10,
		StabilityBaselines: 5,
		ValidityProfiles:   25,
		BootstrapSamples:   10000,
		Seed:               42,
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.TopFavorites < 1 {
		return fmt.Errorf("top_favorites must be at least 1, got %d", c.TopFavorites)
	}
	if c.BottomAvoids < 0 {
		return fmt.Errorf("bottom_avoids must not be negative, got %d", c.BottomAvoids)
	}
	if c.MinCandidates < 2 {
		return fmt.Errorf("min_candidates must be at least 2, got %d", c.MinCandidates)
	}
	if c.StabilityBaselines < 1 {
		return fmt.Errorf("stability_baselines must be at least 1, got %d", c.StabilityBaselines)
	}
	if c.ValidityProfiles < 1 {
		return fmt.Errorf("validity_profiles must be at least 1, got %d", c.ValidityProfiles)
	}
	if c.BootstrapSamples < 1 {
		return fmt.Errorf("bootstrap_samples must be at least 1, got %d", c.BootstrapSamples)
	}
	return nil
}

// Harness runs the evaluation protocols against a recommendation engine
// and a song library. It holds no mutable state between runs; every
// protocol seeds its own random source, so runs are reproducible and
// order-independent.
type Harness struct {
	engine *recommend.Engine
	config *Config
	logger zerolog.Logger
}

// NewHarness builds a harness around an engine. A nil config uses
// DefaultConfig.
func NewHarness(engine *recommend.Engine, cfg *Config, logger zerolog.Logger) (*Harness, error) {
	if engine == nil {
		return nil, fmt.Errorf("harness requires an engine")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid evaluation config: %w", err)
	}

	return &Harness{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("component", "eval").Logger(),
	}, nil
}

// newRNG returns a fresh generator seeded from the configured seed.
func (h *Harness) newRNG() *rand.Rand {
	return rand.New(rand.NewSource(h.config.Seed)) //nolint:gosec // evaluation reproducibility, not cryptography
}

// baseParameters fills the parameter block shared by every protocol.
func (h *Harness) baseParameters() Parameters {
	return Parameters{
		Alpha:            h.engine.Config().Alpha,
		TopFavorites:     h.config.TopFavorites,
		BottomAvoids:     h.config.BottomAvoids,
		BootstrapSamples: h.config.BootstrapSamples,
		Seed:             h.config.Seed,
	}
}

// deriveAndFilter derives the synthetic profile for a song and filters
// the library against it. A false ok means the song is unusable (missing
// data) and the caller should count a skip.
func (h *Harness) deriveAndFilter(song *library.Song, songs []library.Song) (recommend.Profile, []library.Song, bool) {
	profile, err := DeriveSyntheticProfile(song, h.config.TopFavorites, h.config.BottomAvoids)
	if err != nil {
		h.logger.Debug().Str("filename", song.Filename).Err(err).Msg("skipping unusable song")
		return recommend.Profile{}, nil, false
	}
	candidates := h.engine.FilterByRange(songs, profile.RangeMin, profile.RangeMax)
	return profile, candidates, true
}

// scoreProfile runs the scoring pipeline for a profile over a candidate
// set, using the engine's configured alpha.
func (h *Harness) scoreProfile(candidates []library.Song, profile recommend.Profile) []recommend.ScoredResult {
	ideal := h.engine.BuildIdeal(profile)
	return h.engine.Score(candidates, ideal, profile, h.engine.Config().Alpha)
}
