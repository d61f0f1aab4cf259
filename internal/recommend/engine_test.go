// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package recommend

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tessitura/internal/library"
)

func intPtr(v int) *int { return &v }

func makeSong(filename string, tess library.Tessituragram) library.Song {
	lo, hi := 0, 0
	first := true
	for midi := range tess {
		if first || midi < lo {
			lo = midi
		}
		if first || midi > hi {
			hi = midi
		}
		first = false
	}
	return library.Song{
		Filename:      filename,
		Tessituragram: tess,
		Statistics: library.Statistics{
			TotalDuration: tess.TotalDuration(),
			PitchRange: library.PitchRange{
				MinMIDI: intPtr(lo),
				MaxMIDI: intPtr(hi),
			},
			UniquePitches: len(tess),
		},
	}
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	return e
}

func testLibrary() []library.Song {
	return []library.Song{
		makeSong("narrow.xml", library.Tessituragram{60: 2, 62: 2, 64: 1}),
		makeSong("mid.xml", library.Tessituragram{58: 1, 62: 3, 66: 3}),
		makeSong("wide.xml", library.Tessituragram{48: 1, 60: 2, 76: 1}),
		makeSong("high.xml", library.Tessituragram{72: 2, 76: 2, 79: 1}),
	}
}

func TestNewEngine(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		e, err := NewEngine(nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine(nil) error: %v", err)
		}
		if e.Config().Alpha != 0.5 {
			t.Errorf("Alpha = %v, want 0.5", e.Config().Alpha)
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Alpha = -1
		if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
			t.Error("NewEngine() with negative alpha succeeded, want error")
		}
	})
}

func TestFilterByRange(t *testing.T) {
	e := testEngine(t)
	songs := testLibrary()

	tests := []struct {
		name     string
		min, max int
		want     []string
	}{
		{name: "covers narrow and mid", min: 55, max: 70, want: []string{"narrow.xml", "mid.xml"}},
		{name: "exact bounds included", min: 60, max: 64, want: []string{"narrow.xml"}},
		{name: "one note outside excludes", min: 59, max: 64, want: []string{"narrow.xml"}},
		{name: "covers everything", min: 40, max: 90, want: []string{"narrow.xml", "mid.xml", "wide.xml", "high.xml"}},
		{name: "covers nothing", min: 80, max: 90, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.FilterByRange(songs, tt.min, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterByRange() returned %d songs, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Filename != tt.want[i] {
					t.Errorf("result[%d] = %q, want %q", i, got[i].Filename, tt.want[i])
				}
			}
		})
	}

	t.Run("skips songs without range data", func(t *testing.T) {
		noRange := library.Song{Filename: "norange.xml", Tessituragram: library.Tessituragram{60: 1}}
		got := e.FilterByRange([]library.Song{noRange}, 0, 127)
		if len(got) != 0 {
			t.Errorf("FilterByRange() kept rangeless song")
		}
	})
}

func TestScore(t *testing.T) {
	e := testEngine(t)
	profile := Profile{RangeMin: 55, RangeMax: 70, Favorites: []int{62}, Avoids: []int{66}}
	candidates := e.FilterByRange(testLibrary(), profile.RangeMin, profile.RangeMax)
	ideal := e.BuildIdeal(profile)

	results := e.Score(candidates, ideal, profile, 0.5)
	if len(results) != 2 {
		t.Fatalf("Score() returned %d results, want 2", len(results))
	}

	t.Run("ranks are dense and ordered", func(t *testing.T) {
		for i := range results {
			if results[i].Rank != i+1 {
				t.Errorf("results[%d].Rank = %d, want %d", i, results[i].Rank, i+1)
			}
			if i > 0 && results[i].FinalScore > results[i-1].FinalScore {
				t.Errorf("results not sorted: %v after %v", results[i].FinalScore, results[i-1].FinalScore)
			}
		}
	})

	t.Run("scores stay in bounds", func(t *testing.T) {
		for _, r := range results {
			if r.CosineSimilarity < 0 || r.CosineSimilarity > 1+floatTol {
				t.Errorf("%s cosine = %v, want [0, 1]", r.Filename, r.CosineSimilarity)
			}
			if r.AvoidPenalty < 0 || r.AvoidPenalty > 1+floatTol {
				t.Errorf("%s avoid penalty = %v, want [0, 1]", r.Filename, r.AvoidPenalty)
			}
			if r.FinalScore < -0.5-floatTol || r.FinalScore > 1+floatTol {
				t.Errorf("%s final = %v, want [-0.5, 1]", r.Filename, r.FinalScore)
			}
		}
	})

	t.Run("avoid-heavy song scores lower", func(t *testing.T) {
		// mid.xml spends over 40% of its time on the avoided F#4.
		if results[0].Filename != "narrow.xml" {
			t.Errorf("top result = %q, want narrow.xml", results[0].Filename)
		}
	})

	t.Run("explanations attached", func(t *testing.T) {
		for _, r := range results {
			if !strings.Contains(r.Explanation, "Final score:") {
				t.Errorf("%s explanation missing score line: %q", r.Filename, r.Explanation)
			}
		}
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		again := e.Score(candidates, ideal, profile, 0.5)
		for i := range results {
			if again[i].Filename != results[i].Filename || again[i].FinalScore != results[i].FinalScore {
				t.Fatalf("run differs at %d: %+v vs %+v", i, again[i], results[i])
			}
		}
	})

	t.Run("empty candidate set", func(t *testing.T) {
		if got := e.Score(nil, ideal, profile, 0.5); len(got) != 0 {
			t.Errorf("Score(nil) = %v, want empty", got)
		}
	})
}

func TestScoreTieBreaksByFilename(t *testing.T) {
	e := testEngine(t)
	profile := Profile{RangeMin: 60, RangeMax: 64}
	// Identical tessituragrams produce identical scores.
	twins := []library.Song{
		makeSong("b.xml", library.Tessituragram{60: 1, 62: 1}),
		makeSong("a.xml", library.Tessituragram{60: 1, 62: 1}),
	}
	ideal := e.BuildIdeal(profile)

	results := e.Score(twins, ideal, profile, 0.5)
	if results[0].Filename != "a.xml" || results[1].Filename != "b.xml" {
		t.Errorf("tie order = %q, %q, want a.xml, b.xml", results[0].Filename, results[1].Filename)
	}
}

func TestRecommend(t *testing.T) {
	e := testEngine(t)
	songs := testLibrary()

	t.Run("full pipeline", func(t *testing.T) {
		resp, err := e.Recommend(songs, Request{
			Profile: Profile{RangeMin: 55, RangeMax: 70, Favorites: []int{62}},
		})
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if resp.TotalCandidates != 2 {
			t.Errorf("TotalCandidates = %d, want 2", resp.TotalCandidates)
		}
		if len(resp.Results) != 2 {
			t.Errorf("Results length = %d, want 2", len(resp.Results))
		}
		if resp.Metadata.RequestID == "" {
			t.Error("Metadata.RequestID is empty")
		}
		if resp.Metadata.Alpha != 0.5 {
			t.Errorf("Metadata.Alpha = %v, want engine default 0.5", resp.Metadata.Alpha)
		}
		if resp.Metadata.LibrarySize != len(songs) {
			t.Errorf("Metadata.LibrarySize = %d, want %d", resp.Metadata.LibrarySize, len(songs))
		}
		if len(resp.Metadata.IdealVector) != 70-55+1 {
			t.Errorf("IdealVector size = %d, want 16", len(resp.Metadata.IdealVector))
		}
	})

	t.Run("invalid profile rejected", func(t *testing.T) {
		_, err := e.Recommend(songs, Request{
			Profile: Profile{RangeMin: 70, RangeMax: 55},
		})
		if err == nil {
			t.Error("Recommend() with inverted range succeeded, want error")
		}
	})

	t.Run("out-of-midi profile rejected", func(t *testing.T) {
		_, err := e.Recommend(songs, Request{
			Profile: Profile{RangeMin: 0, RangeMax: 200},
		})
		if err == nil {
			t.Error("Recommend() with out-of-range max succeeded, want error")
		}
	})

	t.Run("no singable songs yields empty response", func(t *testing.T) {
		resp, err := e.Recommend(songs, Request{
			Profile: Profile{RangeMin: 100, RangeMax: 110},
		})
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if resp.TotalCandidates != 0 || len(resp.Results) != 0 {
			t.Errorf("got %d candidates, want 0", resp.TotalCandidates)
		}
	})

	t.Run("explicit alpha honored", func(t *testing.T) {
		resp, err := e.Recommend(songs, Request{
			Profile: Profile{RangeMin: 55, RangeMax: 70},
			Alpha:   floatPtr(0.9),
		})
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if resp.Metadata.Alpha != 0.9 {
			t.Errorf("Metadata.Alpha = %v, want 0.9", resp.Metadata.Alpha)
		}
	})

	t.Run("alpha zero disables the avoid penalty", func(t *testing.T) {
		resp, err := e.Recommend(songs, Request{
			Profile: Profile{RangeMin: 55, RangeMax: 70, Avoids: []int{66}},
			Alpha:   floatPtr(0),
		})
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if resp.Metadata.Alpha != 0 {
			t.Errorf("Metadata.Alpha = %v, want explicit 0 kept", resp.Metadata.Alpha)
		}
		for _, r := range resp.Results {
			if r.FinalScore != r.CosineSimilarity {
				t.Errorf("%s: FinalScore = %v, want cosine %v with no penalty",
					r.Filename, r.FinalScore, r.CosineSimilarity)
			}
		}
	})
}

func floatPtr(f float64) *float64 { return &f }

func TestProfileValidate(t *testing.T) {
	disjoint := Profile{RangeMin: 60, RangeMax: 72, Favorites: []int{62}, Avoids: []int{70}}
	if err := disjoint.Validate(); err != nil {
		t.Errorf("Validate() error for disjoint sets: %v", err)
	}

	overlapping := Profile{RangeMin: 60, RangeMax: 72, Favorites: []int{62, 64}, Avoids: []int{64}}
	if err := overlapping.Validate(); err == nil {
		t.Error("Validate() = nil for overlapping sets, want error")
	}
}

func TestGenerateRequestID(t *testing.T) {
	e := testEngine(t)
	a := e.generateRequestID()
	b := e.generateRequestID()
	if !strings.HasPrefix(a, "rec-") {
		t.Errorf("request ID %q missing rec- prefix", a)
	}
	if a == b {
		t.Errorf("consecutive request IDs identical: %q", a)
	}
}
