// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package eval

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/tomtom215/tessitura/internal/library"
)

// validityDescription summarizes the question the protocol answers.
const validityDescription = "Do final scores spread enough to discriminate between songs, and do the score components relate to the final score the way the formula dictates?"

// RunValidity executes the score spread and internal validity protocol.
// Up to ValidityProfiles qualifying profiles each score their candidate
// set; per profile the final-score variance and range measure spread, and
// three Pearson correlations check that the scoring formula behaves as
// written:
//
//	r(final_score, cosine_similarity)      expected positive
//	r(final_score, avoid_penalty)          expected negative
//	r(cosine_similarity, favorite_overlap) expected positive
//
// Correlations over constant sequences resolve to the 0.0 fallback, so a
// degenerate candidate set weakens the aggregate rather than poisoning it
// with NaN. A library yielding no qualifying profile produces an envelope
// with Err set instead of metrics.
func (h *Harness) RunValidity(songs []library.Song) *ValidityResult {
	params := h.baseParameters()
	params.MinCandidates = h.config.MinCandidates
	params.Profiles = h.config.ValidityProfiles

	result := &ValidityResult{
		Experiment:  "score_validity",
		RunID:       uuid.NewString(),
		Description: validityDescription,
		Parameters:  params,
		DataSummary: DataSummary{TotalSongs: len(songs)},
	}

	h.logger.Info().
		Str("run_id", result.RunID).
		Int("library_size", len(songs)).
		Msg("starting validity protocol")

	var variances, ranges []float64
	var rFinalCosine, rFinalAvoid, rCosineFav []float64

	for i := range songs {
		if len(result.PerRun) >= h.config.ValidityProfiles {
			break
		}
		song := &songs[i]

		profile, candidates, ok := h.deriveAndFilter(song, songs)
		if !ok {
			result.DataSummary.SongsSkipped++
			continue
		}
		if len(candidates) < h.config.MinCandidates {
			result.DataSummary.SongsSkipped++
			continue
		}

		scored := h.scoreProfile(candidates, profile)

		finals := make([]float64, len(scored))
		cosines := make([]float64, len(scored))
		avoids := make([]float64, len(scored))
		overlaps := make([]float64, len(scored))
		for j := range scored {
			finals[j] = scored[j].FinalScore
			cosines[j] = scored[j].CosineSimilarity
			avoids[j] = scored[j].AvoidPenalty
			overlaps[j] = scored[j].FavoriteOverlap
		}

		record := RunRecord{
			SourceSong:         song.Filename,
			Composer:           song.Composer,
			Candidates:         len(scored),
			VarianceFinalScore: SampleVariance(finals),
			RangeFinalScore:    finals[0] - finals[len(finals)-1],
			RFinalCosine:       PearsonR(finals, cosines),
			RFinalAvoid:        PearsonR(finals, avoids),
			RCosineFavOverlap:  PearsonR(cosines, overlaps),
		}

		result.PerRun = append(result.PerRun, record)
		variances = append(variances, record.VarianceFinalScore)
		ranges = append(ranges, record.RangeFinalScore)
		rFinalCosine = append(rFinalCosine, record.RFinalCosine)
		rFinalAvoid = append(rFinalAvoid, record.RFinalAvoid)
		rCosineFav = append(rCosineFav, record.RCosineFavOverlap)
	}

	result.DataSummary.Profiles = len(result.PerRun)
	if result.DataSummary.Profiles == 0 {
		result.Err = "no song yields a candidate set large enough for a validity profile"
		h.logger.Warn().Str("run_id", result.RunID).Msg(result.Err)
		return result
	}

	rng := h.newRNG()
	result.MeanVariance = metricWithCI(rng, variances, h.config.BootstrapSamples)
	result.StdVariance = SampleStd(variances)
	result.MeanRange = metricWithCI(rng, ranges, h.config.BootstrapSamples)
	result.StdRange = SampleStd(ranges)

	result.RFinalCosine = correlationWithCI(rng, rFinalCosine, "positive", h.config.BootstrapSamples)
	result.RFinalAvoid = correlationWithCI(rng, rFinalAvoid, "negative", h.config.BootstrapSamples)
	result.RCosineFavOverlap = correlationWithCI(rng, rCosineFav, "positive", h.config.BootstrapSamples)

	h.logger.Info().
		Str("run_id", result.RunID).
		Int("profiles", result.DataSummary.Profiles).
		Float64("mean_variance", result.MeanVariance.Value).
		Float64("r_final_cosine", result.RFinalCosine.Mean).
		Msg("validity protocol complete")

	return result
}

// correlationWithCI packages a mean correlation with its bootstrap CI and
// the sign the scoring formula predicts.
func correlationWithCI(rng *rand.Rand, values []float64, expectedSign string, samples int) CorrelationMetric {
	lo, hi := BootstrapCI(rng, values, samples)
	return CorrelationMetric{Mean: Mean(values), CI95: [2]float64{lo, hi}, ExpectedSign: expectedSign}
}
