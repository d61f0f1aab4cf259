// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package eval

import (
	"github.com/google/uuid"

	"github.com/tomtom215/tessitura/internal/library"
	"github.com/tomtom215/tessitura/internal/recommend"
)

// stabilityDescription summarizes the question the protocol answers.
const stabilityDescription = "How much does the ranking move when the preference profile changes by a single note?"

// baseline bundles one baseline profile with its frozen candidate set
// and ranking.
type baseline struct {
	song       *library.Song
	profile    recommend.Profile
	candidates []library.Song
	ranking    []recommend.ScoredResult
}

// RunStability executes the ranking stability protocol. The first
// qualifying songs become baseline profiles; each baseline ranking is
// compared, via Kendall's tau-b, against the ranking after every possible
// one-note perturbation of the profile:
//
//	add_fav:      each in-range note not already a favorite, ascending
//	remove_fav:   each favorite, in profile order
//	add_avoid:    each in-range note that is neither favorite nor avoid,
//	              ascending
//	remove_avoid: each avoid, in profile order
//
// Perturbations never change the range, so the candidate set is frozen
// per baseline and only the ideal vector and penalty terms move. Taus are
// pooled across baselines for the headline mean and its bootstrap CI;
// per-baseline means and their spread expose whether stability is uniform
// or baseline-dependent. A library yielding no qualifying baseline
// produces an envelope with Err set instead of metrics.
func (h *Harness) RunStability(songs []library.Song) *StabilityResult {
	params := h.baseParameters()
	params.MinCandidates = h.config.MinCandidates
	params.Baselines = h.config.StabilityBaselines

	result := &StabilityResult{
		Experiment:  "ranking_stability",
		RunID:       uuid.NewString(),
		Description: stabilityDescription,
		Parameters:  params,
		DataSummary: DataSummary{TotalSongs: len(songs)},
	}

	h.logger.Info().
		Str("run_id", result.RunID).
		Int("library_size", len(songs)).
		Msg("starting stability protocol")

	baselines := h.selectBaselines(songs, h.config.StabilityBaselines)
	result.DataSummary.Baselines = len(baselines)
	if len(baselines) == 0 {
		result.Err = "no song yields a candidate set large enough for a baseline profile"
		h.logger.Warn().Str("run_id", result.RunID).Msg(result.Err)
		return result
	}

	var pooledTaus []float64
	var perBaselineMeans []float64

	for _, b := range baselines {
		var taus []float64
		for _, pert := range enumeratePerturbations(b.profile) {
			perturbed := h.scoreProfile(b.candidates, pert.profile)
			tau := KendallTauB(rankVector(b.ranking, b.ranking), rankVector(b.ranking, perturbed))

			result.PerPerturbation = append(result.PerPerturbation, PerturbationRecord{
				BaselineSource: b.song.Filename,
				Type:           pert.kind,
				MIDIChanged:    pert.midi,
				NoteChanged:    library.MIDIToNoteName(pert.midi),
				Tau:            tau,
			})
			taus = append(taus, tau)
		}

		result.Baselines = append(result.Baselines, BaselineSummary{
			SourceSong:    b.song.Filename,
			Composer:      b.song.Composer,
			Perturbations: len(taus),
			MeanTau:       Mean(taus),
		})
		pooledTaus = append(pooledTaus, taus...)
		perBaselineMeans = append(perBaselineMeans, Mean(taus))
	}

	result.DataSummary.TotalPerturbations = len(pooledTaus)

	rng := h.newRNG()
	result.MeanTau = metricWithCI(rng, pooledTaus, h.config.BootstrapSamples)
	result.StdTau = SampleStd(pooledTaus)
	result.MeanTauPerBaseline = Mean(perBaselineMeans)
	result.StdTauAcrossBaselines = populationStd(perBaselineMeans)

	result.Interpretation = map[string]string{
		"tau > 0.7":        "high stability: one-note edits barely reorder recommendations",
		"0.3 < tau <= 0.7": "moderate stability: edits visibly reshuffle the middle of the list",
		"tau <= 0.3":       "low stability: single edits substantially rewrite the ranking",
	}

	h.logger.Info().
		Str("run_id", result.RunID).
		Int("baselines", len(baselines)).
		Int("perturbations", len(pooledTaus)).
		Float64("mean_tau", result.MeanTau.Value).
		Msg("stability protocol complete")

	return result
}

// selectBaselines walks the library in order and keeps the first max
// songs whose synthetic profile yields at least MinCandidates candidates.
func (h *Harness) selectBaselines(songs []library.Song, max int) []baseline {
	var selected []baseline
	for i := range songs {
		if len(selected) >= max {
			break
		}
		song := &songs[i]

		profile, candidates, ok := h.deriveAndFilter(song, songs)
		if !ok || len(candidates) < h.config.MinCandidates {
			continue
		}

		selected = append(selected, baseline{
			song:       song,
			profile:    profile,
			candidates: candidates,
			ranking:    h.scoreProfile(candidates, profile),
		})
	}
	return selected
}

// perturbation is one candidate profile edit.
type perturbation struct {
	kind    PerturbationType
	midi    int
	profile recommend.Profile
}

// enumeratePerturbations lists every one-note edit of a profile, in the
// fixed order add_fav, remove_fav, add_avoid, remove_avoid. Additions
// walk the range ascending; removals follow profile order. The order is
// part of the protocol: it keeps result files diffable across runs.
func enumeratePerturbations(p recommend.Profile) []perturbation {
	favSet := make(map[int]struct{}, len(p.Favorites))
	for _, m := range p.Favorites {
		favSet[m] = struct{}{}
	}
	avoidSet := make(map[int]struct{}, len(p.Avoids))
	for _, m := range p.Avoids {
		avoidSet[m] = struct{}{}
	}

	var perts []perturbation

	for midi := p.RangeMin; midi <= p.RangeMax; midi++ {
		if _, ok := favSet[midi]; ok {
			continue
		}
		edited := cloneProfile(p)
		edited.Favorites = append(edited.Favorites, midi)
		perts = append(perts, perturbation{kind: PerturbAddFavorite, midi: midi, profile: edited})
	}

	for i, midi := range p.Favorites {
		edited := cloneProfile(p)
		edited.Favorites = append(edited.Favorites[:i], edited.Favorites[i+1:]...)
		perts = append(perts, perturbation{kind: PerturbRemoveFavorite, midi: midi, profile: edited})
	}

	for midi := p.RangeMin; midi <= p.RangeMax; midi++ {
		if _, ok := favSet[midi]; ok {
			continue
		}
		if _, ok := avoidSet[midi]; ok {
			continue
		}
		edited := cloneProfile(p)
		edited.Avoids = append(edited.Avoids, midi)
		perts = append(perts, perturbation{kind: PerturbAddAvoid, midi: midi, profile: edited})
	}

	for i, midi := range p.Avoids {
		edited := cloneProfile(p)
		edited.Avoids = append(edited.Avoids[:i], edited.Avoids[i+1:]...)
		perts = append(perts, perturbation{kind: PerturbRemoveAvoid, midi: midi, profile: edited})
	}

	return perts
}

// cloneProfile deep-copies a profile so perturbations never alias the
// baseline's slices.
func cloneProfile(p recommend.Profile) recommend.Profile {
	out := p
	out.Favorites = make([]int, len(p.Favorites))
	copy(out.Favorites, p.Favorites)
	out.Avoids = make([]int, len(p.Avoids))
	copy(out.Avoids, p.Avoids)
	return out
}

// rankVector extracts ranks from a ranking, ordered by the reference
// ranking's result order, so the baseline and perturbed vectors align
// element-for-element on the same songs.
func rankVector(reference, ranking []recommend.ScoredResult) []float64 {
	byFilename := make(map[string]int, len(ranking))
	for i := range ranking {
		byFilename[ranking[i].Filename] = ranking[i].Rank
	}

	out := make([]float64, 0, len(reference))
	for i := range reference {
		out = append(out, float64(byFilename[reference[i].Filename]))
	}
	return out
}
