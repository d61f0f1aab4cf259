// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package recommend

import (
	"fmt"
	"time"
)

// Profile describes a singer's range and note preferences. Favorites and
// avoids are MIDI note numbers and are expected to lie within
// [RangeMin, RangeMax]; out-of-range entries are ignored by the ideal
// builder. Disjointness of favorites and avoids is a documented
// precondition rather than an enforced invariant: overlapping sets are
// accepted with avoid-after-favorite semantics (see BuildIdeal).
// Synthetic profiles derived by the evaluation harness are always disjoint.
type Profile struct {
	// RangeMin is the lowest singable MIDI note.
	RangeMin int `json:"range_min" validate:"gte=0,lte=127"`

	// RangeMax is the highest singable MIDI note.
	RangeMax int `json:"range_max" validate:"gte=0,lte=127,gtefield=RangeMin"`

	// Favorites are preferred MIDI notes.
	Favorites []int `json:"favorite_midis" validate:"dive,gte=0,lte=127"`

	// Avoids are MIDI notes the singer wants to stay away from.
	Avoids []int `json:"avoid_midis" validate:"dive,gte=0,lte=127"`
}

// Length returns the dense vector length for this profile's pitch space.
func (p Profile) Length() int {
	return p.RangeMax - p.RangeMin + 1
}

// Validate rejects profiles whose favorite and avoid sets overlap. The
// engine itself tolerates overlap with avoid-after-favorite semantics;
// callers wanting the strict disjoint contract opt in here.
func (p Profile) Validate() error {
	favSet := make(map[int]struct{}, len(p.Favorites))
	for _, m := range p.Favorites {
		favSet[m] = struct{}{}
	}
	for _, m := range p.Avoids {
		if _, ok := favSet[m]; ok {
			return fmt.Errorf("note %d is both a favorite and an avoid", m)
		}
	}
	return nil
}

// Request is one recommendation query against a song collection.
type Request struct {
	// Profile is the singer's range and preferences.
	Profile Profile `json:"profile"`

	// Alpha is the avoid-penalty weight in the final score. Nil means
	// the engine's configured alpha; an explicit 0 disables the penalty.
	Alpha *float64 `json:"alpha,omitempty"`

	// RequestID is a unique identifier for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// ScoredResult is one song's outcome for a single query. It is derived
// state: always reproducible from (song set, profile, alpha), never
// persisted authoritatively.
type ScoredResult struct {
	// Filename identifies the song.
	Filename string `json:"filename"`

	// Composer is carried through for display.
	Composer string `json:"composer,omitempty"`

	// Title is carried through for display.
	Title string `json:"title,omitempty"`

	// FinalScore is cosine similarity minus alpha times the avoid penalty.
	FinalScore float64 `json:"final_score"`

	// CosineSimilarity is the similarity between the song's normalized
	// tessituragram and the ideal vector, in [0, 1].
	CosineSimilarity float64 `json:"cosine_similarity"`

	// AvoidPenalty is the proportion of singing time spent on avoid
	// notes, in [0, 1].
	AvoidPenalty float64 `json:"avoid_penalty"`

	// FavoriteOverlap is the proportion of singing time spent on favorite
	// notes, in [0, 1]. Diagnostic only; it does not enter FinalScore.
	FavoriteOverlap float64 `json:"favorite_overlap"`

	// Rank is the 1-based position in the ranking, dense with no gaps.
	Rank int `json:"rank"`

	// Explanation is a human-readable rationale for the ranking.
	Explanation string `json:"explanation"`

	// NormalizedVector is the song's L1-normalized pitch distribution
	// keyed by MIDI note, for downstream consumers.
	NormalizedVector map[int]float64 `json:"normalized_vector,omitempty"`
}

// Response is a complete recommendation answer: the ranked results plus
// everything needed to reproduce them.
type Response struct {
	// Results is the ranked list, best first.
	Results []ScoredResult `json:"recommendations"`

	// TotalCandidates is the number of songs that survived range
	// filtering and were scored.
	TotalCandidates int `json:"total_candidates"`

	// Metadata carries the query parameters and diagnostics.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata records how a response was produced.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// Profile is the query profile.
	Profile Profile `json:"profile"`

	// Alpha is the avoid-penalty weight actually used.
	Alpha float64 `json:"alpha"`

	// IdealVector is the normalized ideal vector keyed by MIDI note.
	IdealVector map[int]float64 `json:"ideal_vector"`

	// LibrarySize is the total number of songs before filtering.
	LibrarySize int `json:"library_size"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}
