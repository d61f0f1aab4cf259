// Tessitura - Vocal Repertoire Recommendation and Evaluation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tessitura

// Package config loads and validates the application configuration with
// Koanf v2, layering built-in defaults, an optional YAML config file,
// and TESSITURA_* environment variable overrides, in ascending
// precedence. The loaded tree is validated before use, so downstream
// packages receive only well-formed configuration.
package config
