// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package eval

import (
	"math"
	"math/rand"
	"sort"
)

// nearZero is the spread below which a sequence is treated as constant.
// Correlations over (near-)constant data are undefined; they resolve to
// the 0.0 fallback instead of NaN.
const nearZero = 1e-9

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleVariance returns the unbiased sample variance (n-1 denominator),
// or 0 when fewer than two observations exist.
func SampleVariance(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(n-1)
}

// SampleStd returns the unbiased sample standard deviation.
func SampleStd(values []float64) float64 {
	return math.Sqrt(SampleVariance(values))
}

// populationStd returns the population standard deviation (n denominator),
// or 0 when fewer than two observations exist.
func populationStd(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n))
}

// PearsonR returns the Pearson correlation coefficient between two
// equal-length sequences, clamped to [-1, 1]. Degenerate inputs (fewer
// than two points, or a near-constant sequence) return the defined
// 0.0 fallback rather than NaN.
func PearsonR(x, y []float64) float64 {
	n := len(x)
	if n < 2 || len(y) != n {
		return 0
	}

	mx, my := Mean(x), Mean(y)

	var cov, sxSq, sySq float64
	for i := 0; i < n; i++ {
		dx := x[i] - mx
		dy := y[i] - my
		cov += dx * dy
		sxSq += dx * dx
		sySq += dy * dy
	}

	sx := math.Sqrt(sxSq / float64(n-1))
	sy := math.Sqrt(sySq / float64(n-1))
	if sx <= nearZero || sy <= nearZero {
		return 0
	}

	r := cov / (float64(n-1) * sx * sy)
	if r > 1 {
		return 1
	}
	if r < -1 {
		return -1
	}
	return r
}

// percentile returns the p-th percentile (0-100) of values using linear
// interpolation between closest ranks, matching the conventional
// percentile definition used throughout the evaluation protocols.
// Returns 0 for an empty slice.
func percentile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return values[0]
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := p / 100 * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// BootstrapCI computes a 95% bootstrap confidence interval for the mean of
// values using the percentile method: resample with replacement to the
// original size, samples times; take the mean of each resample; report
// the 2.5th and 97.5th percentiles of the resample-mean distribution.
//
// The caller supplies the random source, so results are bit-exact
// reproducible under a fixed seed and independent bootstrap computations
// can each carry their own generator. An empty input yields (0, 0); a
// constant-valued input collapses the interval to (value, value).
func BootstrapCI(rng *rand.Rand, values []float64, samples int) (lo, hi float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}

	means := make([]float64, samples)
	for i := 0; i < samples; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += values[rng.Intn(n)]
		}
		means[i] = sum / float64(n)
	}

	return percentile(means, 2.5), percentile(means, 97.5)
}
