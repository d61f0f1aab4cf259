// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"tessitura.yaml",
	"tessitura.yml",
	"/etc/tessitura/config.yaml",
	"/etc/tessitura/config.yml",
}

// ConfigPathEnvVar overrides the config file search entirely.
const ConfigPathEnvVar = "TESSITURA_CONFIG"

// envPrefix namespaces the override environment variables.
const envPrefix = "TESSITURA_"

// defaultConfig returns a Config with every default applied. Defaults
// load first, then the config file, then environment variables.
func defaultConfig() *Config {
	return &Config{
		Library: LibraryConfig{
			Path: "library.json",
		},
		Output: OutputConfig{
			Dir: "results",
		},
		Scoring: ScoringConfig{
			Alpha:         0.5,
			IdealBase:     0.2,
			FavoriteBoost: 1.0,
			AvoidPenalty:  -1.0,
			Seed:          42,
		},
		Eval: EvalConfig{
			TopFavorites:       4,
			BottomAvoids:       2,
			MinCandidates:      10,
			StabilityBaselines: 5,
			ValidityProfiles:   25,
			BootstrapSamples:   10000,
			Seed:               42,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: TESSITURA_* overrides any setting
//
// Precedence is ENV > file > defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// TESSITURA_SCORING_ALPHA -> scoring.alpha
	// TESSITURA_EVAL_BOOTSTRAP_SAMPLES -> eval.bootstrap_samples
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, honoring the
// TESSITURA_CONFIG override, or empty when none is found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// configSections are the top-level keys an environment variable may
// address. The first underscore-delimited token after the prefix selects
// the section; the remainder stays underscored.
var configSections = map[string]struct{}{
	"library": {},
	"output":  {},
	"scoring": {},
	"eval":    {},
	"logging": {},
}

// envTransformFunc maps a TESSITURA_* variable name to a koanf path:
// the section token becomes the first path segment and the rest of the
// name keeps its underscores.
//
//	TESSITURA_LIBRARY_PATH          -> library.path
//	TESSITURA_SCORING_FAVORITE_BOOST -> scoring.favorite_boost
//	TESSITURA_LOGGING_LEVEL         -> logging.level
//
// Unknown names map to paths no config key matches and are ignored by
// the unmarshal step.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	if _, ok := configSections[section]; !ok {
		return key
	}
	return section + "." + rest
}
