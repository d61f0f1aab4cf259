// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package eval

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tessitura/internal/library"
	"github.com/tomtom215/tessitura/internal/recommend"
)

func testHarness(t *testing.T, cfg *Config) *Harness {
	t.Helper()
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	h, err := NewHarness(engine, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHarness() error: %v", err)
	}
	return h
}

// smallConfig keeps bootstrap cost low and thresholds reachable for
// three-song fixtures.
func smallConfig() *Config {
	return &Config{
		TopFavorites:       4,
		BottomAvoids:       2,
		MinCandidates:      3,
		StabilityBaselines: 2,
		ValidityProfiles:   25,
		BootstrapSamples:   200,
		Seed:               42,
	}
}

// distinctTrio returns three songs sharing the range C4-E4 with clearly
// different pitch distributions, so each song's synthetic profile
// retrieves that song first.
func distinctTrio() []library.Song {
	return []library.Song{
		songWithTess("a.xml", library.Tessituragram{60: 8, 61: 1, 64: 1}),
		songWithTess("b.xml", library.Tessituragram{60: 1, 62: 8, 64: 1}),
		songWithTess("c.xml", library.Tessituragram{60: 1, 63: 1, 64: 8}),
	}
}

func TestNewHarness(t *testing.T) {
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}

	t.Run("nil engine rejected", func(t *testing.T) {
		if _, err := NewHarness(nil, nil, zerolog.Nop()); err == nil {
			t.Error("NewHarness(nil) succeeded, want error")
		}
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		h, err := NewHarness(engine, nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewHarness() error: %v", err)
		}
		if h.config.BootstrapSamples != 10000 {
			t.Errorf("BootstrapSamples = %d, want 10000", h.config.BootstrapSamples)
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		bad := smallConfig()
		bad.MinCandidates = 1
		if _, err := NewHarness(engine, bad, zerolog.Nop()); err == nil {
			t.Error("NewHarness() with min_candidates 1 succeeded, want error")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(*Config) {}},
		{name: "zero top favorites", mutate: func(c *Config) { c.TopFavorites = 0 }, wantErr: true},
		{name: "zero bottom avoids allowed", mutate: func(c *Config) { c.BottomAvoids = 0 }},
		{name: "negative bottom avoids", mutate: func(c *Config) { c.BottomAvoids = -1 }, wantErr: true},
		{name: "zero bootstrap samples", mutate: func(c *Config) { c.BootstrapSamples = 0 }, wantErr: true},
		{name: "zero baselines", mutate: func(c *Config) { c.StabilityBaselines = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}
