// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

// document is the persisted library shape: {"songs": [...]}.
type document struct {
	Songs []Song `json:"songs"`
}

// Load reads a song library from a JSON file.
func Load(path string) ([]Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library %s: %w", path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse library %s: %w", path, err)
	}
	return doc.Songs, nil
}

// Save writes a song library to a JSON file, creating parent directories
// as needed.
func Save(path string, songs []Song) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create library dir: %w", err)
	}

	data, err := json.MarshalIndent(document{Songs: songs}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write library %s: %w", path, err)
	}
	return nil
}

// Merge combines new songs into an existing list, deduplicating by
// filename. Existing entries win; input slices are not mutated.
func Merge(existing, incoming []Song) []Song {
	seen := make(map[string]struct{}, len(existing))
	merged := make([]Song, 0, len(existing)+len(incoming))
	for _, s := range existing {
		merged = append(merged, s)
		seen[s.Filename] = struct{}{}
	}
	for _, s := range incoming {
		if _, ok := seen[s.Filename]; ok {
			continue
		}
		merged = append(merged, s)
		seen[s.Filename] = struct{}{}
	}
	return merged
}

// QueryFilter selects songs by metadata or pitch range. Nil/empty fields
// are ignored. MinMIDI keeps songs whose lowest note is at least that
// note; MaxMIDI keeps songs that never exceed it. Setting both selects
// songs singable within [MinMIDI, MaxMIDI].
type QueryFilter struct {
	Composer string
	Title    string
	MinMIDI  *int
	MaxMIDI  *int
}

// Query returns the songs matching every set criterion. String matches are
// case-insensitive substring matches. Songs without range data are dropped
// when a MIDI criterion is set.
func Query(songs []Song, f QueryFilter) []Song {
	out := make([]Song, 0, len(songs))
	for i := range songs {
		s := &songs[i]

		if f.Composer != "" && !strings.Contains(strings.ToLower(s.Composer), strings.ToLower(f.Composer)) {
			continue
		}
		if f.Title != "" && !strings.Contains(strings.ToLower(s.Title), strings.ToLower(f.Title)) {
			continue
		}

		if f.MinMIDI != nil || f.MaxMIDI != nil {
			lo, hi, ok := s.Range()
			if !ok {
				continue
			}
			if f.MinMIDI != nil && lo < *f.MinMIDI {
				continue
			}
			if f.MaxMIDI != nil && hi > *f.MaxMIDI {
				continue
			}
		}

		out = append(out, *s)
	}
	return out
}
