// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

// Package eval measures the recommendation engine against its own
// library through three protocols, each producing a JSON envelope with
// point estimates, 95% bootstrap confidence intervals, and per-item
// detail records:
//
//   - Self-retrieval (RunSelfRetrieval): derive a profile from each song
//     and check whether the engine ranks that song at the top of its own
//     recommendations. Reports hit rates at 1/3/5 and mean reciprocal
//     rank.
//
//   - Ranking stability (RunStability): perturb baseline profiles one
//     note at a time and measure the ranking movement with Kendall's
//     tau-b. Reports pooled and per-baseline mean taus.
//
//   - Score validity (RunValidity): check that final scores spread
//     enough to discriminate, and that the score components correlate
//     with the final score in the direction the formula dictates.
//
// Every protocol derives profiles the same way (DeriveSyntheticProfile)
// and seeds a fresh random source from the configured seed, so each run
// is bit-exact reproducible and protocols can run in any order or alone.
// Insufficient data never panics or errors out of a run: the envelope
// carries an Err string and whatever partial summary was gathered.
package eval
