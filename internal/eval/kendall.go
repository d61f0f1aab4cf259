// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package eval

import "math"

// KendallTauB returns Kendall's tau-b rank correlation between two
// equal-length sequences, in [-1, 1]. Tau-b corrects for ties:
//
//	tau-b = (nc - nd) / sqrt((n0 - n1) * (n0 - n2))
//
// where nc/nd count concordant/discordant pairs, n0 = n(n-1)/2, and
// n1/n2 count pairs tied within x and within y. When either sequence is
// entirely tied the statistic is undefined and the defined 0.0 fallback
// is returned.
//
// The pairwise O(n^2) scan is deliberate: rankings here cover at most a
// few hundred songs, where it beats the constant factors of a
// merge-sort-based count.
func KendallTauB(x, y []float64) float64 {
	n := len(x)
	if n < 2 || len(y) != n {
		return 0
	}

	var concordant, discordant, tiesX, tiesY int64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := x[i] - x[j]
			dy := y[i] - y[j]

			if dx == 0 {
				tiesX++
			}
			if dy == 0 {
				tiesY++
			}
			if dx == 0 || dy == 0 {
				continue
			}
			if (dx > 0) == (dy > 0) {
				concordant++
			} else {
				discordant++
			}
		}
	}

	n0 := int64(n) * int64(n-1) / 2
	denom := math.Sqrt(float64(n0-tiesX) * float64(n0-tiesY))
	if denom == 0 {
		return 0
	}

	return float64(concordant-discordant) / denom
}
