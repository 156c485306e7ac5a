// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for selectkit.
//
// Configuration is loaded from a single file specified by either the
// SELECTKIT_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There are no fallbacks, no ~/.config
// discovery, and no automatic file search. [Load] reports a missing
// variable with [ErrNoConfig] so commands can fall back to [Default]
// explicitly.
//
// The configuration file supports environment-specific sections
// (development, staging, production) that override base values when
// [Config].Environment matches.
//
// Variable expansion is performed on the state path after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Select, Theme, State
//   - [Default] -- returns a Config with terminal defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other selectkit packages.
package config
