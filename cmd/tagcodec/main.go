// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/lequynhnhu/core/cmd/tagcodec/cli"
	"github.com/lequynhnhu/core/cmd/tagcodec/commands"
	"github.com/lequynhnhu/core/lib/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		// Commands that print their own output (like a failed scan)
		// return an ExitError with the desired exit code. Don't print
		// a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Global flags come before the command name; everything from the
	// first positional argument on belongs to the command tree.
	var globals commands.GlobalParams
	flagSet := cli.FlagsFromParams("tagcodec", &globals)
	flagSet.SetInterspersed(false)
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			commands.Root(config.Default()).PrintHelp(os.Stderr)
			return nil
		}
		return cli.Validation("%v\n\nRun 'tagcodec --help' for usage.", err)
	}

	cfg, err := commands.LoadConfig(globals.ConfigPath)
	if err != nil {
		return err
	}

	logger := cli.NewCommandLogger(globals.Verbose)
	err = commands.Root(cfg).Execute(ctx, flagSet.Args(), logger)
	if err != nil {
		logger.Debug("command failed", "category", string(cli.Category(err)))
	}
	return err
}
