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
	"github.com/lequynhnhu/core/lib/envelope"
	"github.com/lequynhnhu/core/lib/tagcodec"
)

type encodeParams struct {
	cli.InputParams
	From        string `json:"from"        flag:"from,f"       desc:"input format: json, cbor, or msgpack" default:"json"`
	Envelope    bool   `json:"envelope"    flag:"envelope,e"   desc:"wrap the encoded value in a checksummed envelope"`
	Compression string `json:"compression" flag:"compression"  desc:"envelope compression: none, lz4, or zstd (default from config)"`
	HexOutput   bool   `json:"hex_output"  flag:"hex-output,X" desc:"write hex text instead of raw bytes"`
}

type encodeOptions struct {
	from        string
	envelope    bool
	compression envelope.Compression
	hexOutput   bool
}

// EncodeCommand returns the "encode" command.
func EncodeCommand(cfg *config.Config) *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON, CBOR, or MessagePack to a Tagged Value",
		Description: `Read one value from stdin (or a file argument) and write its Tagged
Value encoding to stdout.

JSON input may contain comments and trailing commas (JSONC). Object keys
keep their order. Integral numbers become 64-bit integers and all other
numbers become 64-bit floats. Strings that look like timestamps or
addresses stay strings: JSON has no way to mark them.

CBOR and MessagePack input keep more type information: MessagePack
integer and float widths, CBOR epoch timestamps (tag 1), and byte
strings all map onto their Tagged Value counterparts.

With --envelope, the encoding is wrapped in a checksummed envelope,
compressed with --compression or the configured default.`,
		Usage: "tagcodec encode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode JSON to a Tagged Value",
				Command:     "echo '{\"action\":\"status\"}' | tagcodec encode > request.tv",
			},
			{
				Description: "Encode a MessagePack file into a zstd envelope",
				Command:     "tagcodec encode --from msgpack --envelope --compression zstd event.msgpack > event.tge",
			},
			{
				Description: "Show the encoding as hex",
				Command:     "echo '[1, \"two\", null]' | tagcodec encode -X",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encode", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remainingArgs, err := cli.ReadInput(args, os.Stdin, params.Hex, int64(cfg.Limits.MaxInputBytes))
			if err != nil {
				return err
			}
			if err := cli.RejectArgs("encode", remainingArgs); err != nil {
				return err
			}

			options := encodeOptions{
				from:      params.From,
				envelope:  params.Envelope,
				hexOutput: params.HexOutput,
			}
			if params.Compression != "" {
				options.compression, err = envelope.ParseCompression(params.Compression)
				if err != nil {
					return cli.Validation("--compression: %w", err)
				}
			} else if options.compression, err = cfg.Compression(); err != nil {
				return cli.Validation("config: %w", err)
			}

			if err := cli.CheckBinaryOutput(os.Stdout, params.HexOutput); err != nil {
				return err
			}
			return encodeValue(data, os.Stdout, options, logger)
		},
	}
}

// encodeValue parses data in the input format and writes its Tagged
// Value encoding (optionally enveloped) to w.
func encodeValue(data []byte, w io.Writer, options encodeOptions, logger *slog.Logger) error {
	if len(data) == 0 {
		return cli.Validation("empty input: expected %s data", options.from)
	}

	value, err := parseValue(data, options.from)
	if err != nil {
		return err
	}

	encoded, err := tagcodec.Marshal(value, nil)
	if err != nil {
		return cli.Internal("encode: %w", err)
	}
	logger.Debug("encoded value", "input_bytes", len(data), "encoded_bytes", len(encoded))

	if options.envelope {
		wrapped, err := envelope.Wrap(encoded, envelope.Options{Compression: options.compression})
		if err != nil {
			return cli.Internal("wrap envelope: %w", err)
		}
		logger.Debug("wrapped envelope",
			"requested_compression", options.compression.String(),
			"envelope_bytes", len(wrapped),
		)
		encoded = wrapped
	}

	return cli.WriteOutput(w, encoded, options.hexOutput)
}
