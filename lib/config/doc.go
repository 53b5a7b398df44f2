// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the tagcodec
// command.
//
// Configuration comes from a single file named by either the
// TAGCODEC_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no discovery and no search path. Without
// a file the command runs on [Default].
//
// The file may contain development and production sections that
// override base values when [Config].Environment matches. Production
// defaults are stricter: output is compact and uncolored, and
// envelopes are compressed with zstd.
//
// Path fields support ${HOME} and ${VAR:-default} expansion after
// loading. No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Output, Envelope and Limits
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every invalid field at once
package config
