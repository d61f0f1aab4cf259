// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

// Package main is the entry point for the tessitura command line tool.
//
// Tessitura recommends vocal repertoire by matching each song's pitch
// distribution against a singer's range and note preferences, and ships
// an evaluation harness that measures the recommender against its own
// library.
//
// # Commands
//
//	tessitura recommend -min C3 -max G4 [-fav E3,F3] [-avoid F#4] [-out FILE]
//	    Rank every singable song for the given profile and write the
//	    result envelope as JSON.
//
//	tessitura eval -experiment self_retrieval|stability|validity|all
//	    Run evaluation protocols over the library and write one result
//	    file per protocol into the output directory.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (TESSITURA_*)
//   - Config file (tessitura.yaml, or TESSITURA_CONFIG)
//   - Built-in defaults
//
// # Example Usage
//
// Recommend for a baritone favoring the middle of the staff:
//
//	export TESSITURA_LIBRARY_PATH=/data/library.json
//	tessitura recommend -min A2 -max F4 -fav C3,D3,E3 -avoid E4,F4
//
// Run the full evaluation suite with a tighter bootstrap:
//
//	export TESSITURA_EVAL_BOOTSTRAP_SAMPLES=2000
//	tessitura eval -experiment all
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/tessitura/internal/config"
	"github.com/tomtom215/tessitura/internal/eval"
	"github.com/tomtom215/tessitura/internal/library"
	"github.com/tomtom215/tessitura/internal/logging"
	"github.com/tomtom215/tessitura/internal/recommend"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
	})

	switch os.Args[1] {
	case "recommend":
		runRecommend(cfg, os.Args[2:])
	case "eval":
		runEval(cfg, os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `tessitura - vocal repertoire recommendation

Usage:
  tessitura recommend -min NOTE -max NOTE [flags]   Rank songs for a profile
  tessitura eval -experiment NAME [flags]           Run evaluation protocols

Run "tessitura <command> -h" for command flags.
`)
}

// newEngine builds the recommendation engine from the loaded config.
func newEngine(cfg *config.Config) (*recommend.Engine, error) {
	engineCfg := &recommend.Config{
		Alpha: cfg.Scoring.Alpha,
		Ideal: recommend.IdealConfig{
			Base:          cfg.Scoring.IdealBase,
			FavoriteBoost: cfg.Scoring.FavoriteBoost,
			AvoidPenalty:  cfg.Scoring.AvoidPenalty,
		},
		Seed: cfg.Scoring.Seed,
	}
	return recommend.NewEngine(engineCfg, logging.Logger())
}

func runRecommend(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	minNote := fs.String("min", "", "lowest comfortable note (e.g. C3)")
	maxNote := fs.String("max", "", "highest comfortable note (e.g. G4)")
	favorites := fs.String("fav", "", "comma-separated favorite notes")
	avoids := fs.String("avoid", "", "comma-separated notes to avoid")
	alpha := fs.Float64("alpha", cfg.Scoring.Alpha, "avoid penalty weight")
	out := fs.String("out", "", "output file (default: stdout)")
	fs.Parse(args) //nolint:errcheck // ExitOnError flag set never returns an error

	if *minNote == "" || *maxNote == "" {
		fmt.Fprintln(os.Stderr, "recommend requires -min and -max")
		fs.Usage()
		os.Exit(2)
	}

	profile, err := parseProfile(*minNote, *maxNote, *favorites, *avoids)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid profile")
	}

	songs, err := library.Load(cfg.Library.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Library.Path).Msg("Failed to load library")
	}
	logging.Info().Int("songs", len(songs)).Str("path", cfg.Library.Path).Msg("Library loaded")

	engine, err := newEngine(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize engine")
	}

	resp, err := engine.Recommend(songs, recommend.Request{Profile: profile, Alpha: alpha})
	if err != nil {
		logging.Fatal().Err(err).Msg("Recommendation failed")
	}

	if err := writeJSON(*out, resp); err != nil {
		logging.Fatal().Err(err).Msg("Failed to write results")
	}

	logging.Info().
		Int("candidates", resp.TotalCandidates).
		Str("request_id", resp.Metadata.RequestID).
		Msg("Recommendation complete")
}

func runEval(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	experiment := fs.String("experiment", "all", "self_retrieval, stability, validity, or all")
	fs.Parse(args) //nolint:errcheck // ExitOnError flag set never returns an error

	songs, err := library.Load(cfg.Library.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Library.Path).Msg("Failed to load library")
	}
	logging.Info().Int("songs", len(songs)).Str("path", cfg.Library.Path).Msg("Library loaded")

	engine, err := newEngine(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize engine")
	}

	harness, err := eval.NewHarness(engine, &eval.Config{
		TopFavorites:       cfg.Eval.TopFavorites,
		BottomAvoids:       cfg.Eval.BottomAvoids,
		MinCandidates:      cfg.Eval.MinCandidates,
		StabilityBaselines: cfg.Eval.StabilityBaselines,
		ValidityProfiles:   cfg.Eval.ValidityProfiles,
		BootstrapSamples:   cfg.Eval.BootstrapSamples,
		Seed:               cfg.Eval.Seed,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize evaluation harness")
	}

	runAll := *experiment == "all"
	ran := 0

	if runAll || *experiment == "self_retrieval" {
		result := harness.RunSelfRetrieval(songs)
		writeEvalResult(cfg.Output.Dir, "self_retrieval_results.json", result)
		ran++
	}
	if runAll || *experiment == "stability" {
		result := harness.RunStability(songs)
		writeEvalResult(cfg.Output.Dir, "stability_results.json", result)
		ran++
	}
	if runAll || *experiment == "validity" {
		result := harness.RunValidity(songs)
		writeEvalResult(cfg.Output.Dir, "validity_results.json", result)
		ran++
	}

	if ran == 0 {
		fmt.Fprintf(os.Stderr, "unknown experiment %q\n", *experiment)
		fs.Usage()
		os.Exit(2)
	}
}

func writeEvalResult(dir, filename string, result any) {
	if err := eval.WriteResult(dir, filename, result); err != nil {
		logging.Fatal().Err(err).Str("file", filename).Msg("Failed to write result file")
	}
	logging.Info().Str("file", filename).Str("dir", dir).Msg("Result file written")
}

// parseProfile converts note-name flags into a MIDI profile.
func parseProfile(minNote, maxNote, favorites, avoids string) (recommend.Profile, error) {
	minMIDI, err := library.NoteNameToMIDI(minNote)
	if err != nil {
		return recommend.Profile{}, fmt.Errorf("invalid -min: %w", err)
	}
	maxMIDI, err := library.NoteNameToMIDI(maxNote)
	if err != nil {
		return recommend.Profile{}, fmt.Errorf("invalid -max: %w", err)
	}

	var favs, avs []int
	if strings.TrimSpace(favorites) != "" {
		if favs, err = library.ParseNoteList(favorites); err != nil {
			return recommend.Profile{}, fmt.Errorf("invalid -fav: %w", err)
		}
	}
	if strings.TrimSpace(avoids) != "" {
		if avs, err = library.ParseNoteList(avoids); err != nil {
			return recommend.Profile{}, fmt.Errorf("invalid -avoid: %w", err)
		}
	}

	return recommend.Profile{
		RangeMin:  minMIDI,
		RangeMax:  maxMIDI,
		Favorites: favs,
		Avoids:    avs,
	}, nil
}

// writeJSON writes v as indented JSON to path, or stdout when path is
// empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
