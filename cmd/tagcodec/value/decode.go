// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/lequynhnhu/core/cmd/tagcodec/cli"
	"github.com/lequynhnhu/core/lib/config"
	"github.com/lequynhnhu/core/lib/tagcodec"
)

type decodeParams struct {
	cli.InputParams
	To      string `json:"to"      flag:"to,t"      desc:"output format: json, cbor, or msgpack" default:"json"`
	Compact bool   `json:"compact" flag:"compact,c" desc:"compact JSON output (no indentation)"`
	Slurp   bool   `json:"slurp"   flag:"slurp,s"   desc:"decode a concatenation of values into one array"`
}

type decodeOptions struct {
	to      string
	compact bool
	slurp   bool
	limit   int
}

// DecodeCommand returns the "decode" command.
func DecodeCommand(cfg *config.Config) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert a Tagged Value to JSON, CBOR, or MessagePack",
		Description: `Read a Tagged Value from stdin (or a file argument) and write it to
stdout as JSON, or with --to as CBOR or MessagePack.

Envelopes are detected by their magic bytes, verified against their
digest and unwrapped before decoding. Sealed input must be opened with
"tagcodec open" first.

JSON output keeps map entries in wire order, renders timestamps as
RFC 3339 with milliseconds, addresses as text and blobs as base64.

Without -s the input must hold exactly one value. With -s, a
concatenation of values is decoded into one array.`,
		Usage: "tagcodec decode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode a Tagged Value to pretty JSON",
				Command:     "tagcodec decode request.tv",
			},
			{
				Description: "Decode hex input",
				Command:     "echo '11 01 05 01 6b 01 01' | tagcodec decode -x",
			},
			{
				Description: "Decode a log of concatenated values",
				Command:     "tagcodec decode -s -c events.tv",
			},
			{
				Description: "Convert an envelope to MessagePack",
				Command:     "tagcodec decode --to msgpack event.tge > event.msgpack",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remainingArgs, err := cli.ReadInput(args, os.Stdin, params.Hex, int64(cfg.Limits.MaxInputBytes))
			if err != nil {
				return err
			}
			if err := cli.RejectArgs("decode", remainingArgs); err != nil {
				return err
			}
			if isBinaryFormat(params.To) {
				if err := cli.CheckBinaryOutput(os.Stdout, false); err != nil {
					return err
				}
			}
			return decodeValues(data, os.Stdout, decodeOptions{
				to:      params.To,
				compact: params.Compact || cfg.Output.Compact,
				slurp:   params.Slurp,
				limit:   cfg.Limits.MaxInputBytes,
			}, logger)
		},
	}
}

// decodeValues decodes the Tagged Value (or, with slurp, every value of
// a concatenation) in data and writes it to w in the output format.
func decodeValues(data []byte, w io.Writer, options decodeOptions, logger *slog.Logger) error {
	payload, err := unwrapInput(data, options.limit, logger)
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		return cli.Validation("empty input: expected a Tagged Value")
	}

	buf := tagcodec.WrapBuffer(payload)
	var value any
	if options.slurp {
		values := []any{}
		for buf.Remaining() > 0 {
			offset := buf.Position()
			element, err := tagcodec.Decode(buf, nil)
			if err != nil {
				return cli.Internal("decode value %d at offset %d: %w", len(values), offset, err)
			}
			values = append(values, element)
		}
		logger.Debug("decoded concatenation", "values", len(values), "bytes", len(payload))
		value = values
	} else {
		value, err = tagcodec.Decode(buf, nil)
		if err != nil {
			return cli.Internal("decode: %w", err)
		}
		if trailing := buf.Remaining(); trailing > 0 {
			return cli.Validation("%d trailing bytes after the value at offset %d; use -s to decode a concatenation",
				trailing, buf.Position())
		}
	}

	return writeValue(w, value, options.to, options.compact)
}
