// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package recommend

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tessitura/internal/library"
	"github.com/tomtom215/tessitura/internal/validation"
)

// Engine filters, scores and ranks songs against a singer's profile.
// It is stateless apart from configuration and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// Random source for request IDs (protected by rngMu).
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewEngine creates a new scoring engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for request IDs
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// FilterByRange keeps only songs whose entire pitch range fits inside
// [minMIDI, maxMIDI]. Containment is hard, not overlap: a song requiring
// even one note outside the singer's range is unsingable. Songs without
// range data are skipped. Returns a new slice; the input is not mutated.
func (e *Engine) FilterByRange(songs []library.Song, minMIDI, maxMIDI int) []library.Song {
	filtered := make([]library.Song, 0, len(songs))
	for i := range songs {
		lo, hi, ok := songs[i].Range()
		if !ok {
			continue
		}
		if lo >= minMIDI && hi <= maxMIDI {
			filtered = append(filtered, songs[i])
		}
	}
	return filtered
}

// BuildIdeal constructs the ideal vector for a profile using the engine's
// configured weights.
func (e *Engine) BuildIdeal(p Profile) []float64 {
	return BuildIdeal(p.RangeMin, p.RangeMax, p.Favorites, p.Avoids, e.config.Ideal)
}

// Score scores every candidate against the ideal vector and returns the
// ranked results, best first. For each song:
//
//  1. Build the dense vector over [p.RangeMin, p.RangeMax] and
//     L1-normalize it into proportions of singing time.
//  2. Cosine similarity against the ideal vector (0 if either is zero).
//  3. avoid_penalty = summed normalized weight at avoid positions.
//  4. favorite_overlap = summed normalized weight at favorite positions
//     (diagnostic; excluded from the final score).
//  5. final = cosine - alpha*avoid_penalty.
//
// The order is a deterministic total order: descending final score,
// ties broken by filename ascending. Ranks are dense and 1-based.
// An empty candidate slice yields an empty result, not an error.
func (e *Engine) Score(candidates []library.Song, ideal []float64, p Profile, alpha float64) []ScoredResult {
	avoidIdx := inRangeIndices(p.Avoids, p.RangeMin, p.RangeMax)
	favIdx := inRangeIndices(p.Favorites, p.RangeMin, p.RangeMax)

	results := make([]ScoredResult, 0, len(candidates))
	for i := range candidates {
		song := &candidates[i]

		dense := BuildDense(song.Tessituragram, p.RangeMin, p.RangeMax)
		normed := NormalizeL1(dense)

		cos := CosineSimilarity(normed, ideal)

		var avoidPen, favOverlap float64
		for _, idx := range avoidIdx {
			avoidPen += normed[idx]
		}
		for _, idx := range favIdx {
			favOverlap += normed[idx]
		}

		normalized := make(map[int]float64, len(normed))
		for j, v := range normed {
			normalized[p.RangeMin+j] = v
		}

		results = append(results, ScoredResult{
			Filename:         song.Filename,
			Composer:         song.Composer,
			Title:            song.Title,
			FinalScore:       cos - alpha*avoidPen,
			CosineSimilarity: cos,
			AvoidPenalty:     avoidPen,
			FavoriteOverlap:  favOverlap,
			NormalizedVector: normalized,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		return results[i].Filename < results[j].Filename
	})

	for i := range results {
		results[i].Rank = i + 1
		results[i].Explanation = Explain(&results[i], p.Favorites, p.Avoids)
	}

	return results
}

// Recommend runs the full query pipeline: validate the profile, filter by
// range, build the ideal vector, score, and assemble the response
// envelope. An empty candidate set produces a response with no results.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(songs []library.Song, req Request) (*Response, error) {
	req = e.prepareRequest(req)

	if err := validation.ValidateStruct(req.Profile); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Int("range_min", req.Profile.RangeMin).
		Int("range_max", req.Profile.RangeMax).
		Logger()
	logger.Debug().Msg("processing recommendation request")

	candidates := e.FilterByRange(songs, req.Profile.RangeMin, req.Profile.RangeMax)
	ideal := e.BuildIdeal(req.Profile)
	results := e.Score(candidates, ideal, req.Profile, *req.Alpha)

	idealByMIDI := make(map[int]float64, len(ideal))
	for i, v := range ideal {
		idealByMIDI[req.Profile.RangeMin+i] = v
	}

	logger.Debug().
		Int("library", len(songs)).
		Int("candidates", len(candidates)).
		Msg("recommendation complete")

	return &Response{
		Results:         results,
		TotalCandidates: len(candidates),
		Metadata: ResponseMetadata{
			RequestID:   req.RequestID,
			Profile:     req.Profile,
			Alpha:       *req.Alpha,
			IdealVector: idealByMIDI,
			LibrarySize: len(songs),
			Timestamp:   time.Now().UTC(),
		},
	}, nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = e.generateRequestID()
	}
	if req.Alpha == nil {
		alpha := e.config.Alpha
		req.Alpha = &alpha
	}
	return req
}

// generateRequestID generates a unique request ID for tracing.
// This method is safe for concurrent use.
func (e *Engine) generateRequestID() string {
	e.rngMu.Lock()
	n := e.rng.Intn(10000)
	e.rngMu.Unlock()
	return fmt.Sprintf("rec-%d-%d", time.Now().UnixNano(), n)
}

// inRangeIndices converts MIDI notes to dense vector indices, dropping
// notes outside [minMIDI, maxMIDI].
func inRangeIndices(midis []int, minMIDI, maxMIDI int) []int {
	idx := make([]int, 0, len(midis))
	for _, m := range midis {
		if m >= minMIDI && m <= maxMIDI {
			idx = append(idx, m-minMIDI)
		}
	}
	return idx
}
