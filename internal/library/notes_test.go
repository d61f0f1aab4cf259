// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package library

import (
	"reflect"
	"testing"
)

func TestMIDIToNoteName(t *testing.T) {
	tests := []struct {
		midi int
		want string
	}{
		{60, "C4"},
		{61, "C#4"},
		{69, "A4"},
		{21, "A0"},
		{108, "C8"},
		{63, "Eb4"},
		{0, "C-1"},
		{127, "G9"},
	}

	for _, tt := range tests {
		if got := MIDIToNoteName(tt.midi); got != tt.want {
			t.Errorf("MIDIToNoteName(%d) = %q, want %q", tt.midi, got, tt.want)
		}
	}
}

func TestNoteNameToMIDI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "middle C", input: "C4", want: 60},
		{name: "sharp", input: "F#4", want: 66},
		{name: "flat via b", input: "Bb3", want: 58},
		{name: "flat via dash", input: "B-3", want: 58},
		{name: "lowercase letter", input: "c4", want: 60},
		{name: "double sharp", input: "C##4", want: 62},
		{name: "surrounding whitespace", input: " G3 ", want: 55},
		{name: "negative octave", input: "C-1", want: 0},
		{name: "empty", input: "", wantErr: true},
		{name: "bad letter", input: "H4", wantErr: true},
		{name: "missing octave", input: "C#", wantErr: true},
		{name: "above midi range", input: "C12", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NoteNameToMIDI(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NoteNameToMIDI(%q) = %d, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NoteNameToMIDI(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NoteNameToMIDI(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestNoteNameToMIDI_RoundTrip(t *testing.T) {
	for midi := 0; midi <= 127; midi++ {
		name := MIDIToNoteName(midi)
		got, err := NoteNameToMIDI(name)
		if err != nil {
			t.Fatalf("NoteNameToMIDI(%q) error: %v", name, err)
		}
		if got != midi {
			t.Errorf("round trip %d -> %q -> %d", midi, name, got)
		}
	}
}

func TestParseNoteList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "whitespace only", input: "  ", want: nil},
		{name: "single note", input: "C4", want: []int{60}},
		{name: "multiple notes", input: "C4,E4,G4", want: []int{60, 64, 67}},
		{name: "spaces around commas", input: "C4 , E4", want: []int{60, 64}},
		{name: "trailing comma", input: "C4,", want: []int{60}},
		{name: "invalid entry", input: "C4,X9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNoteList(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseNoteList(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNoteList(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseNoteList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
