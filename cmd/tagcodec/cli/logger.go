// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command operations.
// When stderr is a terminal, uses slog.TextHandler for human-readable output.
// When stderr is piped or redirected (CI, scripts, tests), uses
// slog.JSONHandler for machine-parseable output. verbose lowers the level
// from info to debug.
//
// [Command.Execute] scopes the logger with the command path before
// calling Run:
//
//	logger.Debug("decoded value", "bytes", len(data))
func NewCommandLogger(verbose bool) *slog.Logger {
	return newLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), verbose)
}

func newLogger(w io.Writer, terminal, verbose bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		options.Level = slog.LevelDebug
	}
	var handler slog.Handler
	if terminal {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// DiscardLogger returns a logger that drops every record. Tests use it
// to call Run functions directly.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
