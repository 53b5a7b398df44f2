// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "tagcodec",
		Subcommands: []*Command{
			{
				Name: "encode",
				Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
					called = "encode"
					return nil
				},
			},
			{
				Name: "decode",
				Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
					called = "decode"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"decode"}, DiscardLogger()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "decode" {
		t.Errorf("dispatched to %q, want %q", called, "decode")
	}
}

func TestCommand_Execute_ParsesFlags(t *testing.T) {
	type params struct {
		Compact bool `flag:"compact,c" desc:"compact output"`
	}
	var p params
	var receivedArgs []string

	root := &Command{
		Name: "tagcodec",
		Subcommands: []*Command{
			{
				Name: "decode",
				Flags: func() *pflag.FlagSet {
					return FlagsFromParams("decode", &p)
				},
				Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
					receivedArgs = args
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"decode", "-c", "value.tv"}, DiscardLogger()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !p.Compact {
		t.Error("Compact = false, want true")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "value.tv" {
		t.Errorf("args = %v, want [value.tv]", receivedArgs)
	}
}

func TestCommand_Execute_LoggerCarriesCommand(t *testing.T) {
	var output bytes.Buffer
	logger := newLogger(&output, false, true)

	root := &Command{
		Name: "tagcodec",
		Subcommands: []*Command{
			{
				Name: "scan",
				Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
					logger.Debug("scanned")
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"scan"}, logger); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(output.String(), `"command":"scan"`) {
		t.Errorf("log output %q does not carry the command attribute", output.String())
	}
}

func TestCommand_Execute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "tagcodec",
		Subcommands: []*Command{
			{Name: "decode", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
			{Name: "dump", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"decdoe"}, DiscardLogger())
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "decode"`) {
		t.Errorf("error %q does not suggest decode", err)
	}
	if Category(err) != CategoryValidation {
		t.Errorf("category = %q, want %q", Category(err), CategoryValidation)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	type params struct {
		Envelope bool `flag:"envelope" desc:"wrap in an envelope"`
	}
	var p params
	command := &Command{
		Name: "encode",
		Flags: func() *pflag.FlagSet {
			return FlagsFromParams("encode", &p)
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--envelop"}, DiscardLogger())
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --envelope?") {
		t.Errorf("error %q does not suggest --envelope", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name: "tagcodec",
		Subcommands: []*Command{
			{Name: "decode", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), nil, DiscardLogger())
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute() error = %v, want subcommand required", err)
	}
}

func TestCommand_Execute_PropagatesRunError(t *testing.T) {
	want := errors.New("bad input")
	command := &Command{
		Name: "decode",
		Run: func(context.Context, []string, *slog.Logger) error {
			return want
		},
	}

	if err := command.Execute(context.Background(), nil, DiscardLogger()); !errors.Is(err, want) {
		t.Errorf("Execute() error = %v, want %v", err, want)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	type params struct {
		Hex bool `flag:"hex,x" desc:"hex-encoded input"`
	}
	var p params
	root := &Command{
		Name: "tagcodec",
		Subcommands: []*Command{
			{
				Name:    "decode",
				Summary: "Convert tagged values to JSON",
				Flags: func() *pflag.FlagSet {
					return FlagsFromParams("decode", &p)
				},
				Examples: []Example{
					{Description: "Decode a file", Command: "tagcodec decode value.tv"},
				},
			},
		},
	}

	var output bytes.Buffer
	root.PrintHelp(&output)
	for _, fragment := range []string{"Commands:", "decode", "Convert tagged values to JSON"} {
		if !strings.Contains(output.String(), fragment) {
			t.Errorf("root help missing %q:\n%s", fragment, output.String())
		}
	}

	output.Reset()
	decode := root.Subcommands[0]
	decode.parent = root
	decode.PrintHelp(&output)
	for _, fragment := range []string{"Usage:\n  tagcodec decode [flags]", "--hex", "# Decode a file"} {
		if !strings.Contains(output.String(), fragment) {
			t.Errorf("decode help missing %q:\n%s", fragment, output.String())
		}
	}
}
