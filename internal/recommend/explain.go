// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/tessitura/internal/library"
)

// Explain produces a brief human-readable rationale for a scored result.
// It is a pure function of the result and the preference sets: no
// learning, no side effects. When both preference sets are empty only the
// score line is produced.
//
// Threshold bands are fixed: favorite overlap >=30% is strong, >=10%
// moderate, below that low; avoid presence <=2% is minimal, <=10% some,
// above that notable.
func Explain(r *ScoredResult, favorites, avoids []int) string {
	parts := make([]string, 0, 3)

	parts = append(parts, fmt.Sprintf(
		"Final score: %.2f (cosine similarity %.2f)", r.FinalScore, r.CosineSimilarity))

	if len(favorites) > 0 {
		names := noteList(favorites)
		pct := r.FavoriteOverlap * 100
		switch {
		case pct >= 30:
			parts = append(parts, fmt.Sprintf(
				"Strong overlap with your favorite notes (%s): %.0f%% of singing time.", names, pct))
		case pct >= 10:
			parts = append(parts, fmt.Sprintf(
				"Moderate overlap with favorite notes (%s): %.0f%% of singing time.", names, pct))
		default:
			parts = append(parts, fmt.Sprintf(
				"Low overlap with favorite notes (%s): only %.0f%% of singing time.", names, pct))
		}
	}

	if len(avoids) > 0 {
		names := noteList(avoids)
		pct := r.AvoidPenalty * 100
		switch {
		case pct <= 2:
			parts = append(parts, fmt.Sprintf(
				"Minimal presence of avoid notes (%s): %.1f%% of singing time.", names, pct))
		case pct <= 10:
			parts = append(parts, fmt.Sprintf(
				"Some presence of avoid notes (%s): %.1f%% of singing time.", names, pct))
		default:
			parts = append(parts, fmt.Sprintf(
				"Notable presence of avoid notes (%s): %.1f%% of singing time, which lowered the score.", names, pct))
		}
	}

	return strings.Join(parts, "  ")
}

// noteList renders MIDI notes as a comma-separated list of note names.
func noteList(midis []int) string {
	names := make([]string, len(midis))
	for i, m := range midis {
		names[i] = library.MIDIToNoteName(m)
	}
	return strings.Join(names, ", ")
}
