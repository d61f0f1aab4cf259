// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package recommend

import (
	"math"

	"github.com/tomtom215/tessitura/internal/library"
)

// BuildDense projects a sparse tessituragram onto a dense vector over the
// pitch space [minMIDI, maxMIDI]. Index i holds the duration for MIDI note
// minMIDI+i; pitches outside the window are dropped silently.
func BuildDense(t library.Tessituragram, minMIDI, maxMIDI int) []float64 {
	length := maxMIDI - minMIDI + 1
	if length <= 0 {
		return nil
	}

	vec := make([]float64, length)
	for midi, duration := range t {
		idx := midi - minMIDI
		if idx >= 0 && idx < length {
			vec[idx] = duration
		}
	}
	return vec
}

// NormalizeL1 scales a vector so its elements sum to 1, turning durations
// into proportions of singing time. A zero-sum vector is returned as an
// unchanged copy rather than producing NaNs.
func NormalizeL1(vec []float64) []float64 {
	out := make([]float64, len(vec))
	var sum float64
	for _, v := range vec {
		sum += v
	}
	if sum == 0 {
		copy(out, vec)
		return out
	}
	for i, v := range vec {
		out[i] = v / sum
	}
	return out
}

// NormalizeL2 scales a vector to unit Euclidean length. A zero vector is
// returned as an unchanged copy.
func NormalizeL2(vec []float64) []float64 {
	out := make([]float64, len(vec))
	norm := Norm(vec)
	if norm == 0 {
		copy(out, vec)
		return out
	}
	for i, v := range vec {
		out[i] = v / norm
	}
	return out
}

// Dot returns the dot product of two equal-length vectors.
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the Euclidean norm of a vector.
func Norm(vec []float64) float64 {
	var sumSq float64
	for _, v := range vec {
		sumSq += v * v
	}
	return math.Sqrt(sumSq)
}

// CosineSimilarity returns the cosine similarity between two vectors, in
// [0, 1] for non-negative inputs. Returns 0 when either vector is zero.
func CosineSimilarity(a, b []float64) float64 {
	normA := Norm(a)
	normB := Norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}
	return Dot(a, b) / (normA * normB)
}
