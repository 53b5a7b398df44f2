// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, settings map[string]string) {
	t.Helper()
	original := readBuildInfo
	t.Cleanup(func() { readBuildInfo = original })

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		info := &debug.BuildInfo{}
		for key, value := range settings {
			info.Settings = append(info.Settings, debug.BuildSetting{Key: key, Value: value})
		}
		return info, true
	}
}

func setStamp(t *testing.T, commit, dirty, built string) {
	t.Helper()
	originalCommit, originalDirty, originalBuilt := GitCommit, GitDirty, BuildTime
	t.Cleanup(func() { GitCommit, GitDirty, BuildTime = originalCommit, originalDirty, originalBuilt })
	GitCommit, GitDirty, BuildTime = commit, dirty, built
}

func TestInfo_Ldflags(t *testing.T) {
	setStamp(t, "abc1234", "true", "2026-02-10T08:00:00Z")
	stubBuildInfo(t, map[string]string{"vcs.revision": "ignored"})

	want := Version + " (abc1234-dirty, 2026-02-10T08:00:00Z)"
	if got := Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
	if got := Commit(); got != "abc1234" {
		t.Errorf("Commit() = %q, want %q", got, "abc1234")
	}
}

func TestInfo_BuildInfoFallback(t *testing.T) {
	setStamp(t, "unknown", "false", "unknown")
	stubBuildInfo(t, map[string]string{
		"vcs.revision": "0123456789abcdef0123",
		"vcs.modified": "false",
		"vcs.time":     "2026-03-01T12:00:00Z",
	})

	want := Version + " (0123456789ab, 2026-03-01T12:00:00Z)"
	if got := Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestInfo_NoStamp(t *testing.T) {
	setStamp(t, "unknown", "false", "unknown")
	stubBuildInfo(t, nil)

	want := Version + " (unknown, unknown)"
	if got := Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	for _, fragment := range []string{Short(), runtime.Version(), runtime.GOOS + "/" + runtime.GOARCH} {
		if !strings.Contains(full, fragment) {
			t.Errorf("Full() = %q, missing %q", full, fragment)
		}
	}
}
