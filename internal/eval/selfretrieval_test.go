// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package eval

import (
	"testing"

	"github.com/tomtom215/tessitura/internal/library"
)

func TestRunSelfRetrieval(t *testing.T) {
	h := testHarness(t, smallConfig())

	t.Run("distinct songs retrieve themselves", func(t *testing.T) {
		songs := distinctTrio()
		result := h.RunSelfRetrieval(songs)

		if result.Err != "" {
			t.Fatalf("unexpected Err: %s", result.Err)
		}
		if result.Experiment != "self_retrieval" {
			t.Errorf("Experiment = %q", result.Experiment)
		}
		if result.RunID == "" {
			t.Error("RunID is empty")
		}
		if result.DataSummary.ValidQueries != 3 {
			t.Fatalf("ValidQueries = %d, want 3", result.DataSummary.ValidQueries)
		}

		for _, q := range result.PerQuery {
			if q.Rank != 1 {
				t.Errorf("%s rank = %d, want 1", q.Filename, q.Rank)
			}
			if q.Hit1 != 1 || q.Hit3 != 1 || q.Hit5 != 1 {
				t.Errorf("%s hits = (%d, %d, %d), want all 1", q.Filename, q.Hit1, q.Hit3, q.Hit5)
			}
			if q.ReciprocalRank != 1 {
				t.Errorf("%s reciprocal rank = %v, want 1", q.Filename, q.ReciprocalRank)
			}
		}

		if result.HR1.Value != 1 || result.MRR.Value != 1 {
			t.Errorf("HR1 = %v, MRR = %v, want 1 and 1", result.HR1.Value, result.MRR.Value)
		}
		// All observations are 1, so the bootstrap interval collapses.
		if result.HR1.CI95 != [2]float64{1, 1} {
			t.Errorf("HR1 CI = %v, want [1, 1]", result.HR1.CI95)
		}
	})

	t.Run("skips unusable and degenerate songs", func(t *testing.T) {
		songs := distinctTrio()

		noRange := songWithTess("norange.xml", library.Tessituragram{60: 1})
		noRange.Statistics.PitchRange.MinMIDI = nil

		// Isolated range: its own filter keeps only itself.
		isolated := songWithTess("isolated.xml", library.Tessituragram{100: 2, 104: 1})

		songs = append(songs, noRange, isolated)
		result := h.RunSelfRetrieval(songs)

		if result.DataSummary.TotalSongs != 5 {
			t.Errorf("TotalSongs = %d, want 5", result.DataSummary.TotalSongs)
		}
		if result.DataSummary.ValidQueries != 3 {
			t.Errorf("ValidQueries = %d, want 3", result.DataSummary.ValidQueries)
		}
		if result.DataSummary.SongsSkipped != 2 {
			t.Errorf("SongsSkipped = %d, want 2", result.DataSummary.SongsSkipped)
		}
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		songs := distinctTrio()
		first := h.RunSelfRetrieval(songs)
		second := h.RunSelfRetrieval(songs)

		if first.MRR != second.MRR || first.HR3 != second.HR3 {
			t.Errorf("repeated runs differ: %+v vs %+v", first.MRR, second.MRR)
		}
	})

	t.Run("empty library sets error", func(t *testing.T) {
		result := h.RunSelfRetrieval(nil)
		if result.Err == "" {
			t.Error("Err is empty for empty library")
		}
		if result.DataSummary.ValidQueries != 0 {
			t.Errorf("ValidQueries = %d, want 0", result.DataSummary.ValidQueries)
		}
	})
}
