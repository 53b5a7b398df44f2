// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lequynhnhu/core/cmd/tagcodec/cli"
	"github.com/lequynhnhu/core/lib/config"
)

func TestRootCommandsDocumented(t *testing.T) {
	root := Root(config.Default())
	seen := make(map[string]bool)
	for _, command := range root.Subcommands {
		if seen[command.Name] {
			t.Errorf("duplicate command %q", command.Name)
		}
		seen[command.Name] = true
		if command.Summary == "" {
			t.Errorf("%s: missing Summary", command.Name)
		}
		if command.Run == nil {
			t.Errorf("%s: missing Run", command.Name)
		}
	}
	for _, name := range []string{"encode", "decode", "dump", "scan", "seal", "open", "keygen", "version"} {
		if !seen[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestCommandFlagsBind(t *testing.T) {
	// FlagsFromParams panics on a bad struct tag; build every flag set
	// once so a broken tag fails here rather than at run time.
	for _, command := range Root(config.Default()).Subcommands {
		if command.Flags != nil {
			command.Flags()
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig with no file: %v", err)
	}
	if cfg.Environment != config.Development {
		t.Errorf("environment = %s, want development defaults", cfg.Environment)
	}

	path := filepath.Join(t.TempDir(), "tagcodec.yaml")
	if err := os.WriteFile(path, []byte("environment: production\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig(%s): %v", path, err)
	}
	if cfg.Envelope.Compression != "zstd" {
		t.Errorf("compression = %s, want zstd", cfg.Envelope.Compression)
	}

	t.Setenv(config.EnvironmentVariable, path)
	cfg, err = LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig via %s: %v", config.EnvironmentVariable, err)
	}
	if cfg.Environment != config.Production {
		t.Errorf("environment = %s, want production from the variable", cfg.Environment)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagcodec.yaml")
	if err := os.WriteFile(path, []byte("envelope:\n  compression: brotli\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := LoadConfig(path)
	if cli.Category(err) != cli.CategoryValidation || !strings.Contains(err.Error(), "envelope.compression") {
		t.Errorf("LoadConfig error = %v, want validation error naming envelope.compression", err)
	}
}
