// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package eval

import (
	"sort"

	"github.com/tomtom215/tessitura/internal/library"
	"github.com/tomtom215/tessitura/internal/recommend"
)

// DeriveSyntheticProfile builds a user profile from a song's own pitch
// distribution, the shared first step of every evaluation protocol:
//
//   - The profile range is the song's pitch range.
//   - Favorites are the topFavorites pitches by L1-normalized proportion
//     of singing time (all of them if the song has fewer pitches).
//   - Avoids are the bottomAvoids pitches (none if the song has fewer
//     than bottomAvoids pitches).
//   - Ties are broken toward the lower MIDI note, so derivation is
//     deterministic.
//   - Any avoid pitch that is already a favorite is removed: unlike the
//     general ideal builder, synthetic derivation enforces disjointness.
//
// Songs without range or tessituragram data, or with zero total duration,
// return a wrapped library sentinel error and are skipped by callers.
func DeriveSyntheticProfile(song *library.Song, topFavorites, bottomAvoids int) (recommend.Profile, error) {
	if err := song.CheckUsable(); err != nil {
		return recommend.Profile{}, err
	}

	minMIDI, maxMIDI, _ := song.Range()
	total := song.Tessituragram.TotalDuration()

	type pitchWeight struct {
		midi       int
		proportion float64
	}
	weights := make([]pitchWeight, 0, len(song.Tessituragram))
	for midi, duration := range song.Tessituragram {
		weights = append(weights, pitchWeight{midi: midi, proportion: duration / total})
	}

	sort.Slice(weights, func(i, j int) bool {
		if weights[i].proportion != weights[j].proportion {
			return weights[i].proportion > weights[j].proportion
		}
		return weights[i].midi < weights[j].midi
	})

	nPitches := len(weights)

	nFav := topFavorites
	if nFav > nPitches {
		nFav = nPitches
	}
	favorites := make([]int, 0, nFav)
	for _, w := range weights[:nFav] {
		favorites = append(favorites, w.midi)
	}

	var avoids []int
	if nPitches >= bottomAvoids {
		favSet := make(map[int]struct{}, len(favorites))
		for _, m := range favorites {
			favSet[m] = struct{}{}
		}
		avoids = make([]int, 0, bottomAvoids)
		for _, w := range weights[nPitches-bottomAvoids:] {
			if _, isFav := favSet[w.midi]; isFav {
				continue
			}
			avoids = append(avoids, w.midi)
		}
	}

	return recommend.Profile{
		RangeMin:  minMIDI,
		RangeMax:  maxMIDI,
		Favorites: favorites,
		Avoids:    avoids,
	}, nil
}
