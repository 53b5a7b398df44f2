// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// buildStamp returns the commit, dirty flag and build time, falling
// back to the VCS stamp the go command embeds when -ldflags did not
// set them (e.g., "go install").
func buildStamp() (commit string, dirty bool, built string) {
	commit, dirty, built = GitCommit, GitDirty == "true", BuildTime
	if commit != "unknown" {
		return commit, dirty, built
	}
	info, ok := readBuildInfo()
	if !ok {
		return commit, dirty, built
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
			if len(commit) > 12 {
				commit = commit[:12]
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		case "vcs.time":
			if built == "unknown" {
				built = setting.Value
			}
		}
	}
	return commit, dirty, built
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	commit, dirty, built := buildStamp()
	suffix := ""
	if dirty {
		suffix = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, commit, suffix, built)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	commit, _, _ := buildStamp()
	return commit
}
