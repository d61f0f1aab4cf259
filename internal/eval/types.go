// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package eval

// Metric is a point estimate with its 95% bootstrap confidence interval.
type Metric struct {
	// Value is the point estimate.
	Value float64 `json:"value"`

	// CI95 is the [lower, upper] bound of the 95% bootstrap CI.
	CI95 [2]float64 `json:"ci_95"`
}

// Parameters records every tunable that influenced an experiment run,
// so results are reproducible from the envelope alone.
type Parameters struct {
	// Alpha is the avoid-penalty weight used for scoring.
	Alpha float64 `json:"alpha"`

	// TopFavorites is the number of top pitches used as favorites in
	// synthetic profiles.
	TopFavorites int `json:"top_n_favorite"`

	// BottomAvoids is the number of bottom pitches used as avoids.
	BottomAvoids int `json:"bottom_n_avoid"`

	// MinCandidates is the minimum filtered candidate set size for a
	// profile to qualify (stability and validity protocols).
	MinCandidates int `json:"min_candidates,omitempty"`

	// Baselines is the number of baseline profiles (stability protocol).
	Baselines int `json:"n_baselines,omitempty"`

	// Profiles is the maximum number of profiles (validity protocol).
	Profiles int `json:"n_profiles,omitempty"`

	// BootstrapSamples is the bootstrap resample count.
	BootstrapSamples int `json:"bootstrap_samples"`

	// Seed is the random seed for bootstrap resampling.
	Seed int64 `json:"random_seed"`
}

// DataSummary describes what portion of the library an experiment
// actually used, including skips, so partial libraries are inspectable.
type DataSummary struct {
	// TotalSongs is the library size before any filtering.
	TotalSongs int `json:"total_songs_in_library"`

	// ValidQueries counts queries that produced a record (self-retrieval).
	ValidQueries int `json:"valid_queries,omitempty"`

	// SongsSkipped counts songs excluded for missing data or degenerate
	// candidate sets.
	SongsSkipped int `json:"songs_skipped,omitempty"`

	// Baselines counts baseline profiles used (stability).
	Baselines int `json:"n_baselines,omitempty"`

	// TotalPerturbations counts perturbations evaluated (stability).
	TotalPerturbations int `json:"total_perturbations,omitempty"`

	// Profiles counts profiles used (validity).
	Profiles int `json:"n_profiles,omitempty"`
}

// QueryRecord is one self-retrieval query outcome.
type QueryRecord struct {
	// Filename is the query song.
	Filename string `json:"filename"`

	// Composer is carried through for inspection.
	Composer string `json:"composer,omitempty"`

	// Title is carried through for inspection.
	Title string `json:"title,omitempty"`

	// Rank is where the query song landed in its own ranking.
	Rank int `json:"rank"`

	// Hit1 is 1 when Rank == 1.
	Hit1 int `json:"hit_at_1"`

	// Hit3 is 1 when Rank <= 3.
	Hit3 int `json:"hit_at_3"`

	// Hit5 is 1 when Rank <= 5.
	Hit5 int `json:"hit_at_5"`

	// ReciprocalRank is 1/Rank.
	ReciprocalRank float64 `json:"reciprocal_rank"`
}

// SelfRetrievalResult is the envelope for the self-retrieval protocol:
// when a profile is derived from one song, does the engine rank that song
// first, or near the top?
type SelfRetrievalResult struct {
	// Experiment is the protocol identifier.
	Experiment string `json:"experiment"`

	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// Description is a one-line summary of the question asked.
	Description string `json:"description"`

	// Parameters are the tunables used.
	Parameters Parameters `json:"parameters"`

	// DataSummary describes library usage and skips.
	DataSummary DataSummary `json:"data_summary"`

	// HR1, HR3, HR5 are hit rates at cutoffs 1, 3 and 5.
	HR1 Metric `json:"hr_at_1"`
	HR3 Metric `json:"hr_at_3"`
	HR5 Metric `json:"hr_at_5"`

	// MRR is the mean reciprocal rank.
	MRR Metric `json:"mrr"`

	// PerQuery holds one record per eligible query song.
	PerQuery []QueryRecord `json:"per_query"`

	// Err is set instead of metrics when the library cannot support the
	// protocol; the result stays inspectable rather than raising.
	Err string `json:"error,omitempty"`
}

// PerturbationType classifies a one-note preference change.
type PerturbationType string

// Perturbation kinds enumerated by the stability protocol.
const (
	PerturbAddFavorite    PerturbationType = "add_fav"
	PerturbRemoveFavorite PerturbationType = "remove_fav"
	PerturbAddAvoid       PerturbationType = "add_avoid"
	PerturbRemoveAvoid    PerturbationType = "remove_avoid"
)

// PerturbationRecord is the outcome of a single one-note perturbation.
type PerturbationRecord struct {
	// BaselineSource is the song whose profile was perturbed.
	BaselineSource string `json:"baseline_source"`

	// Type is the perturbation kind.
	Type PerturbationType `json:"perturbation_type"`

	// MIDIChanged is the note added or removed.
	MIDIChanged int `json:"midi_changed"`

	// NoteChanged is the readable name of MIDIChanged.
	NoteChanged string `json:"note_changed"`

	// Tau is Kendall's tau-b between the baseline and perturbed rankings.
	Tau float64 `json:"tau"`
}

// BaselineSummary aggregates taus for one baseline profile.
type BaselineSummary struct {
	// SourceSong is the song the baseline profile was derived from.
	SourceSong string `json:"source_song"`

	// Composer is carried through for inspection.
	Composer string `json:"composer,omitempty"`

	// Perturbations is the number of perturbations evaluated.
	Perturbations int `json:"n_perturbations"`

	// MeanTau is the mean tau across this baseline's perturbations.
	MeanTau float64 `json:"mean_tau"`
}

// StabilityResult is the envelope for the ranking stability protocol:
// how much does the ranking move when preferences change by one note?
type StabilityResult struct {
	// Experiment is the protocol identifier.
	Experiment string `json:"experiment"`

	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// Description is a one-line summary of the question asked.
	Description string `json:"description"`

	// Parameters are the tunables used.
	Parameters Parameters `json:"parameters"`

	// DataSummary describes library usage.
	DataSummary DataSummary `json:"data_summary"`

	// MeanTau is the mean over all pooled perturbation taus, with its
	// bootstrap CI.
	MeanTau Metric `json:"mean_tau"`

	// StdTau is the sample standard deviation of pooled taus.
	StdTau float64 `json:"std_tau"`

	// MeanTauPerBaseline is the mean of per-baseline mean taus.
	MeanTauPerBaseline float64 `json:"mean_tau_per_baseline"`

	// StdTauAcrossBaselines is the spread of per-baseline means.
	StdTauAcrossBaselines float64 `json:"std_tau_across_baselines"`

	// Baselines summarizes each baseline profile.
	Baselines []BaselineSummary `json:"baseline_profiles"`

	// PerPerturbation holds every perturbation outcome.
	PerPerturbation []PerturbationRecord `json:"per_perturbation"`

	// Interpretation maps tau bands to their conventional reading.
	Interpretation map[string]string `json:"interpretation,omitempty"`

	// Err is set instead of metrics when no song yields a large enough
	// candidate set.
	Err string `json:"error,omitempty"`
}

// RunRecord is the outcome for one profile in the validity protocol.
type RunRecord struct {
	// SourceSong is the song the profile was derived from.
	SourceSong string `json:"source_song"`

	// Composer is carried through for inspection.
	Composer string `json:"composer,omitempty"`

	// Candidates is the filtered candidate set size.
	Candidates int `json:"n_songs"`

	// VarianceFinalScore is the sample variance of final scores.
	VarianceFinalScore float64 `json:"variance_final_score"`

	// RangeFinalScore is max minus min final score.
	RangeFinalScore float64 `json:"range_final_score"`

	// RFinalCosine is Pearson r between final score and cosine
	// similarity (expected positive).
	RFinalCosine float64 `json:"r_final_score_cosine"`

	// RFinalAvoid is Pearson r between final score and avoid penalty
	// (expected negative).
	RFinalAvoid float64 `json:"r_final_score_avoid"`

	// RCosineFavOverlap is Pearson r between cosine similarity and
	// favorite overlap (expected positive).
	RCosineFavOverlap float64 `json:"r_cosine_favorite_overlap"`
}

// CorrelationMetric is a correlation summary with its expected sign.
type CorrelationMetric struct {
	// Mean is the mean correlation across profiles.
	Mean float64 `json:"mean"`

	// CI95 is the bootstrap CI of the mean.
	CI95 [2]float64 `json:"ci_95"`

	// ExpectedSign documents the direction internal validity predicts.
	ExpectedSign string `json:"expected_sign"`
}

// ValidityResult is the envelope for the score spread and internal
// validity protocol: do final scores discriminate between songs, and do
// the score components relate to the final score the way the formula says?
type ValidityResult struct {
	// Experiment is the protocol identifier.
	Experiment string `json:"experiment"`

	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// Description is a one-line summary of the question asked.
	Description string `json:"description"`

	// Parameters are the tunables used.
	Parameters Parameters `json:"parameters"`

	// DataSummary describes library usage.
	DataSummary DataSummary `json:"data_summary"`

	// MeanVariance is the mean final-score variance across profiles.
	MeanVariance Metric `json:"mean_variance_final_score"`

	// StdVariance is the spread of per-profile variances.
	StdVariance float64 `json:"std_variance_final_score"`

	// MeanRange is the mean final-score range across profiles.
	MeanRange Metric `json:"mean_range_final_score"`

	// StdRange is the spread of per-profile ranges.
	StdRange float64 `json:"std_range_final_score"`

	// RFinalCosine summarizes r(final_score, cosine_similarity).
	RFinalCosine CorrelationMetric `json:"r_final_score_cosine_similarity"`

	// RFinalAvoid summarizes r(final_score, avoid_penalty).
	RFinalAvoid CorrelationMetric `json:"r_final_score_avoid_penalty"`

	// RCosineFavOverlap summarizes r(cosine_similarity, favorite_overlap).
	RCosineFavOverlap CorrelationMetric `json:"r_cosine_similarity_favorite_overlap"`

	// PerRun holds one record per profile.
	PerRun []RunRecord `json:"per_run"`

	// Err is set instead of metrics when no song yields a large enough
	// candidate set.
	Err string `json:"error,omitempty"`
}
