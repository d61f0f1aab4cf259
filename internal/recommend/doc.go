// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

// Package recommend implements the content-based scoring engine that
// matches songs to a singer's range and note preferences.
//
// # Pipeline
//
// A query runs four steps, all deterministic:
//
//   - Filter: keep songs whose entire pitch range fits inside the
//     singer's range (hard containment, not overlap).
//   - Vectorize: project each song's tessituragram onto a dense vector
//     over the singer's pitch space and L1-normalize it into proportions
//     of singing time.
//   - Score: cosine similarity against the L2-normalized ideal preference
//     vector, minus alpha times the proportion of time on avoided notes.
//   - Rank: descending score with filename tie-break, dense 1-based
//     ranks, and a textual explanation per result.
//
// # Determinism
//
// Fixed (songs, profile, alpha) inputs produce identical output across
// runs. The tie-break by filename gives every query a total order, which
// the evaluation harness depends on.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	resp, err := engine.Recommend(songs, recommend.Request{
//	    Profile: recommend.Profile{
//	        RangeMin:  60, // C4
//	        RangeMax:  79, // G5
//	        Favorites: []int{64, 67},
//	        Avoids:    []int{78},
//	    },
//	})
package recommend
