// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the tagcodec
// binary.
//
// Four package-level variables are injected at build time via
// -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/lequynhnhu/core/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/tagcodec
//
//   - [GitCommit]: short git SHA of the build
//   - [GitDirty]: "true" if there were uncommitted changes
//   - [BuildTime]: UTC timestamp of the build
//   - [Version]: semantic version string (set manually for releases)
//
// When GitCommit is not injected, the VCS stamp recorded by the go
// command (runtime/debug.ReadBuildInfo) fills in the commit, dirty flag
// and time. Test binaries carry no stamp and report "unknown".
//
// Formatting functions produce human-readable version strings:
//
//   - [Info]: "0.1.0-dev (abc1234, 2026-02-10T...)" for --version
//   - [Full]: Info plus Go version and GOOS/GOARCH
//   - [Short]: just the version number
//   - [Commit]: just the git SHA
package version
