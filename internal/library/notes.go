// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package library

import (
	"fmt"
	"strconv"
	"strings"
)

// noteNames holds the display name for each pitch class (0-11).
// Sharps and flats follow common vocal-score usage.
var noteNames = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

// semitones maps a note letter to its pitch class.
var semitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// MIDIToNoteName converts a MIDI note number to a readable name,
// e.g. 60 -> "C4".
func MIDIToNoteName(midi int) string {
	octave := (midi / 12) - 1
	return fmt.Sprintf("%s%d", noteNames[((midi%12)+12)%12], octave)
}

// NoteNameToMIDI converts a human-readable note name to a MIDI note number.
// Accepted forms: C4, F#4, Bb3, Eb5, G#5, D-4 (flat via '-'). Multiple
// accidentals stack (C##4). Returns an error on unparseable input; the
// message includes examples because this surfaces directly to CLI users.
func NoteNameToMIDI(name string) (int, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, fmt.Errorf("%q is not a valid note name. Examples: C4, F#4, Bb3, Eb5", name)
	}

	letter := trimmed[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	pc, ok := semitones[letter]
	if !ok {
		return 0, fmt.Errorf("%q is not a valid note name. Examples: C4, F#4, Bb3, Eb5", name)
	}

	rest := trimmed[1:]

	// Split the octave digits off the end; what remains are accidentals.
	j := len(rest)
	for j > 0 && rest[j-1] >= '0' && rest[j-1] <= '9' {
		j--
	}
	if j == len(rest) {
		return 0, fmt.Errorf("%q is not a valid note name. Examples: C4, F#4, Bb3, Eb5", name)
	}
	oct, err := strconv.Atoi(rest[j:])
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid note name. Examples: C4, F#4, Bb3, Eb5", name)
	}
	accPart := rest[:j]

	// A '-' right before the digits is ambiguous: flat or octave sign.
	// Octave -1 only covers MIDI 0-11, so prefer that reading when it
	// lands in range; otherwise the '-' is a flat (B-3 means Bb3).
	if strings.HasSuffix(accPart, "-") {
		if acc, ok := accidentalOffset(accPart[:len(accPart)-1]); ok {
			if midi := (-oct+1)*12 + pc + acc; midi >= 0 && midi <= 127 {
				return midi, nil
			}
		}
	}

	acc, ok := accidentalOffset(accPart)
	if !ok {
		return 0, fmt.Errorf("%q is not a valid note name. Examples: C4, F#4, Bb3, Eb5", name)
	}

	midi := (oct+1)*12 + pc + acc
	if midi < 0 || midi > 127 {
		return 0, fmt.Errorf("%q is outside the MIDI range 0-127", name)
	}
	return midi, nil
}

// accidentalOffset sums a run of accidental characters into a semitone
// offset. ok is false when a non-accidental character appears.
func accidentalOffset(s string) (offset int, ok bool) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '#':
			offset++
		case 'b', '-':
			offset--
		default:
			return 0, false
		}
	}
	return offset, true
}

// ParseNoteList converts a comma-separated list of note names to MIDI
// numbers. Empty input yields an empty slice.
func ParseNoteList(list string) ([]int, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	parts := strings.Split(list, ",")
	midis := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		m, err := NoteNameToMIDI(p)
		if err != nil {
			return nil, err
		}
		midis = append(midis, m)
	}
	return midis, nil
}
