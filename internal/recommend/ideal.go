// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package recommend

// IdealConfig contains the weights used to build the ideal preference
// vector. A zero-value IdealConfig means the standard weights; once any
// field is set, every field is taken literally, so a configured zero is
// a usable weight (a flat base, a disabled boost, no penalty).
type IdealConfig struct {
	// Base is the weight every in-range pitch starts with.
	Base float64 `json:"base"`

	// FavoriteBoost is added at favorite pitches.
	FavoriteBoost float64 `json:"favorite_boost"`

	// AvoidPenalty is added at avoid pitches. Must be negative to be
	// punitive; values are clamped to zero afterwards so the vector
	// stays non-negative.
	AvoidPenalty float64 `json:"avoid_penalty"`
}

// DefaultIdealConfig returns the standard ideal-vector weights.
func DefaultIdealConfig() IdealConfig {
	return IdealConfig{
		Base:          0.2,
		FavoriteBoost: 1.0,
		AvoidPenalty:  -1.0,
	}
}

// applyDefaults substitutes the standard weights for a zero-value
// config. Partially set configs are taken literally.
func (c IdealConfig) applyDefaults() IdealConfig {
	if c == (IdealConfig{}) {
		return DefaultIdealConfig()
	}
	return c
}

// BuildIdeal constructs the L2-normalized ideal preference vector over
// [minMIDI, maxMIDI]:
//
//  1. Every in-range position starts at Base.
//  2. FavoriteBoost is added at favorite positions.
//  3. AvoidPenalty (negative) is added at avoid positions.
//  4. Negative values are clamped to 0, keeping the vector non-negative
//     so cosine similarity stays in [0, 1].
//  5. The vector is L2-normalized.
//
// Out-of-range favorites and avoids are ignored. When a pitch is both a
// favorite and an avoid, the penalty is applied after the boost, so the
// net weight can remain positive; callers are expected to keep the sets
// disjoint (see Profile).
func BuildIdeal(minMIDI, maxMIDI int, favorites, avoids []int, cfg IdealConfig) []float64 {
	cfg = cfg.applyDefaults()

	length := maxMIDI - minMIDI + 1
	if length <= 0 {
		return nil
	}

	vec := make([]float64, length)
	for i := range vec {
		vec[i] = cfg.Base
	}

	for _, midi := range favorites {
		idx := midi - minMIDI
		if idx >= 0 && idx < length {
			vec[idx] += cfg.FavoriteBoost
		}
	}

	for _, midi := range avoids {
		idx := midi - minMIDI
		if idx >= 0 && idx < length {
			vec[idx] += cfg.AvoidPenalty
		}
	}

	for i, v := range vec {
		if v < 0 {
			vec[i] = 0
		}
	}

	return NormalizeL2(vec)
}
