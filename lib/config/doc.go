// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for sheetshark.
//
// Configuration is loaded from a single file specified by either the
// SHEETSHARK_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no ~/.config discovery and no
// automatic file search. Running with no file at all is fine, the
// defaults stand on their own, but a path that is set and does not
// load is an error: silently falling back to defaults would hide a
// misspelled path.
//
// Both YAML and JSONC (JSON with comments and trailing commas) files
// are accepted. JSONC input is stripped to plain JSON first, which
// the YAML parser then reads as a subset.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- data directory, day start, project catalog
//   - [Default] -- returns a Config with standalone defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other sheetshark packages except
// lib/timeline (for validating the day start time).
package config
