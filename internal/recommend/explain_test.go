// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package recommend

import (
	"strings"
	"testing"
)

func TestExplain(t *testing.T) {
	tests := []struct {
		name      string
		result    ScoredResult
		favorites []int
		avoids    []int
		contains  []string
		excludes  []string
	}{
		{
			name:     "score line only when no preferences",
			result:   ScoredResult{FinalScore: 0.72, CosineSimilarity: 0.80},
			contains: []string{"Final score: 0.72", "cosine similarity 0.80"},
			excludes: []string{"favorite", "avoid"},
		},
		{
			name:      "strong favorite overlap",
			result:    ScoredResult{FavoriteOverlap: 0.45},
			favorites: []int{60, 62},
			contains:  []string{"Strong overlap", "C4, D4", "45% of singing time"},
		},
		{
			name:      "moderate favorite overlap",
			result:    ScoredResult{FavoriteOverlap: 0.15},
			favorites: []int{60},
			contains:  []string{"Moderate overlap", "15% of singing time"},
		},
		{
			name:      "low favorite overlap",
			result:    ScoredResult{FavoriteOverlap: 0.05},
			favorites: []int{60},
			contains:  []string{"Low overlap", "only 5% of singing time"},
		},
		{
			name:     "minimal avoid presence",
			result:   ScoredResult{AvoidPenalty: 0.01},
			avoids:   []int{66},
			contains: []string{"Minimal presence", "F#4", "1.0% of singing time"},
			excludes: []string{"lowered the score"},
		},
		{
			name:     "some avoid presence",
			result:   ScoredResult{AvoidPenalty: 0.07},
			avoids:   []int{66},
			contains: []string{"Some presence", "7.0% of singing time"},
		},
		{
			name:     "notable avoid presence lowers score",
			result:   ScoredResult{AvoidPenalty: 0.25},
			avoids:   []int{66},
			contains: []string{"Notable presence", "25.0% of singing time", "which lowered the score"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Explain(&tt.result, tt.favorites, tt.avoids)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Explain() = %q, missing %q", got, want)
				}
			}
			for _, banned := range tt.excludes {
				if strings.Contains(got, banned) {
					t.Errorf("Explain() = %q, should not contain %q", got, banned)
				}
			}
		})
	}
}
