// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

// Package library defines the song collection model and its JSON round-trip.
//
// A song is identified by its filename and carries a tessituragram: a
// duration-weighted histogram of singing time per pitch, keyed by MIDI note
// number so enharmonic equivalents collapse to one entry. Songs are loaded
// once per process and treated as immutable afterwards; how tessituragrams
// are extracted from scores is outside this module.
package library

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying why a song is unusable for scoring or
// profile derivation. Callers skip such songs and surface skip counts.
var (
	// ErrNoRange indicates a song without pitch range data.
	ErrNoRange = errors.New("song has no pitch range")

	// ErrNoTessituragram indicates a song without tessituragram data.
	ErrNoTessituragram = errors.New("song has empty tessituragram")

	// ErrZeroDuration indicates a tessituragram with zero total duration.
	ErrZeroDuration = errors.New("song has zero total duration")
)

// Tessituragram maps MIDI note numbers to accumulated singing duration in
// quarter lengths. Durations are non-negative; keys are unique by
// construction. JSON encoding uses string keys ("60": 1.5), matching the
// persisted library format.
type Tessituragram map[int]float64

// TotalDuration returns the summed duration across all pitches.
func (t Tessituragram) TotalDuration() float64 {
	var total float64
	for _, d := range t {
		total += d
	}
	return total
}

// PitchRange describes the lowest and highest pitch of a vocal line.
// MinMIDI and MaxMIDI are nil when the source had no pitched notes;
// use Song.Range rather than dereferencing directly.
type PitchRange struct {
	// Min is the lowest pitch name, e.g. "C4".
	Min string `json:"min,omitempty"`

	// MinMIDI is the lowest MIDI note number.
	MinMIDI *int `json:"min_midi"`

	// Max is the highest pitch name, e.g. "G5".
	Max string `json:"max,omitempty"`

	// MaxMIDI is the highest MIDI note number.
	MaxMIDI *int `json:"max_midi"`
}

// Statistics holds derived per-song measurements computed at ingestion time.
type Statistics struct {
	// TotalDuration is the summed note duration in quarter lengths.
	TotalDuration float64 `json:"total_duration"`

	// PitchRange is the span of the vocal line.
	PitchRange PitchRange `json:"pitch_range"`

	// UniquePitches is the number of distinct MIDI notes used.
	UniquePitches int `json:"unique_pitches"`
}

// Song is one entry in the repertoire library. Filename is the unique
// identifier; everything else is descriptive or derived.
type Song struct {
	// Filename uniquely identifies the song within the library.
	Filename string `json:"filename"`

	// Composer is the composer name, possibly empty.
	Composer string `json:"composer,omitempty"`

	// Title is the song title, possibly empty.
	Title string `json:"title,omitempty"`

	// Tessituragram is the duration-weighted pitch histogram.
	Tessituragram Tessituragram `json:"tessituragram"`

	// Statistics holds the derived measurements.
	Statistics Statistics `json:"statistics"`
}

// HasRange reports whether the song carries usable pitch range data.
func (s *Song) HasRange() bool {
	return s.Statistics.PitchRange.MinMIDI != nil && s.Statistics.PitchRange.MaxMIDI != nil
}

// HasTessituragram reports whether the song carries tessituragram data.
func (s *Song) HasTessituragram() bool {
	return len(s.Tessituragram) > 0
}

// Range returns the song's MIDI pitch range. ok is false when range data
// is absent.
func (s *Song) Range() (minMIDI, maxMIDI int, ok bool) {
	if !s.HasRange() {
		return 0, 0, false
	}
	return *s.Statistics.PitchRange.MinMIDI, *s.Statistics.PitchRange.MaxMIDI, true
}

// CheckUsable verifies the song has the data every scoring and
// profile-derivation path depends on. It returns a sentinel error
// (ErrNoRange, ErrNoTessituragram, ErrZeroDuration) wrapped with the
// filename, or nil.
func (s *Song) CheckUsable() error {
	if !s.HasRange() {
		return fmt.Errorf("%s: %w", s.Filename, ErrNoRange)
	}
	if !s.HasTessituragram() {
		return fmt.Errorf("%s: %w", s.Filename, ErrNoTessituragram)
	}
	if s.Tessituragram.TotalDuration() <= 0 {
		return fmt.Errorf("%s: %w", s.Filename, ErrZeroDuration)
	}
	return nil
}
