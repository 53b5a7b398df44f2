// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete tagcodec command tree and
// resolves the configuration it runs with.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lequynhnhu/core/cmd/tagcodec/cli"
	sealcmd "github.com/lequynhnhu/core/cmd/tagcodec/seal"
	valuecmd "github.com/lequynhnhu/core/cmd/tagcodec/value"
	"github.com/lequynhnhu/core/lib/config"
	"github.com/lequynhnhu/core/lib/version"
)

// GlobalParams holds the flags accepted before the command name.
type GlobalParams struct {
	ConfigPath string `json:"config"  flag:"config"    desc:"path to a tagcodec.yaml config file (default $TAGCODEC_CONFIG)"`
	Verbose    bool   `json:"verbose" flag:"verbose,v" desc:"log debug detail to stderr"`
}

// Root builds and returns the complete tagcodec command tree. Every
// command reads its defaults from cfg.
func Root(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name: "tagcodec",
		Description: `tagcodec: inspect and produce Tagged Values.

A Tagged Value is a self-describing binary encoding: every value starts
with a one-byte type tag followed by a compact payload. These commands
convert between Tagged Values and JSON, CBOR, or MessagePack, show the
structure of encoded data, frame concatenated values, and wrap values in
checksummed, optionally age-sealed envelopes.

Global flags (before the command name):
  --config path   config file (default $TAGCODEC_CONFIG; none is fine)
  -v, --verbose   log debug detail to stderr`,
		Usage: "tagcodec [--config path] [-v] <command> [flags] [file]",
		Subcommands: []*cli.Command{
			valuecmd.EncodeCommand(cfg),
			valuecmd.DecodeCommand(cfg),
			valuecmd.DumpCommand(cfg),
			valuecmd.ScanCommand(cfg),
			sealcmd.SealCommand(cfg),
			sealcmd.OpenCommand(cfg),
			sealcmd.KeygenCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					if err := cli.RejectArgs("version", args); err != nil {
						return err
					}
					fmt.Printf("tagcodec %s\n", version.Full())
					return nil
				},
			},
		},
	}
}

// LoadConfig resolves the configuration: the file at path when given,
// else the file named by TAGCODEC_CONFIG when set, else the defaults.
// The result is validated.
func LoadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, cli.Validation("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid config: %w", err)
	}
	return cfg, nil
}
