// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/lequynhnhu/core/cmd/tagcodec/cli"
	"github.com/lequynhnhu/core/lib/config"
	"github.com/lequynhnhu/core/lib/tagcodec"
)

type scanParams struct {
	cli.InputParams
	Index     int  `json:"index"      flag:"index,n"      desc:"write only the value at this index, as raw bytes" default:"-1"`
	HexOutput bool `json:"hex_output" flag:"hex-output,X" desc:"write the extracted value as hex text"`
}

type scanOptions struct {
	index     int
	hexOutput bool
	limit     int
}

// errFound stops a scan once the requested value has been located.
var errFound = errors.New("found")

// ScanCommand returns the "scan" command.
func ScanCommand(cfg *config.Config) *cli.Command {
	var params scanParams

	return &cli.Command{
		Name:    "scan",
		Summary: "List or extract the values of a concatenation",
		Description: `Frame a concatenation of Tagged Values by probing each value's length,
without decoding any of them, and print one row per value: its index,
byte offset, encoded size and tag, followed by a total.

With --index N, only the Nth value (counting from 0) is written, as
raw bytes or with --hex-output as hex. The extracted bytes are a
complete Tagged Value and can be piped into any other command.

When the input turns malformed part way through, scan prints the rows
it could frame and the failure point, then exits with status 1.`,
		Usage: "tagcodec scan [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "List the values in a log",
				Command:     "tagcodec scan events.tv",
			},
			{
				Description: "Decode the fourth value",
				Command:     "tagcodec scan --index 3 events.tv | tagcodec decode",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("scan", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remainingArgs, err := cli.ReadInput(args, os.Stdin, params.Hex, int64(cfg.Limits.MaxInputBytes))
			if err != nil {
				return err
			}
			if err := cli.RejectArgs("scan", remainingArgs); err != nil {
				return err
			}
			if params.Index >= 0 {
				if err := cli.CheckBinaryOutput(os.Stdout, params.HexOutput); err != nil {
					return err
				}
			}
			return scanValues(data, os.Stdout, scanOptions{
				index:     params.Index,
				hexOutput: params.HexOutput,
				limit:     cfg.Limits.MaxInputBytes,
			}, logger)
		},
	}
}

// scanValues lists the values of the concatenation in data, or writes
// the one at options.index.
func scanValues(data []byte, w io.Writer, options scanOptions, logger *slog.Logger) error {
	payload, err := unwrapInput(data, options.limit, logger)
	if err != nil {
		return err
	}
	buf := tagcodec.WrapBuffer(payload)

	if options.index >= 0 {
		var found []byte
		count := 0
		err := tagcodec.Scan(buf, nil, func(index, offset, length int) error {
			count++
			if index == options.index {
				found = payload[offset : offset+length]
				return errFound
			}
			return nil
		})
		switch {
		case errors.Is(err, errFound):
			logger.Debug("extracted value", "index", options.index, "bytes", len(found))
			return cli.WriteOutput(w, found, options.hexOutput)
		case err != nil:
			return cli.Internal("scan: %w", err)
		default:
			return cli.NotFound("value index %d out of range: input holds %d values", options.index, count)
		}
	}

	table := tabwriter.NewWriter(w, 2, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(table, "INDEX\tOFFSET\tSIZE\tTAG\t\n")
	count, total := 0, 0
	scanErr := tagcodec.Scan(buf, nil, func(index, offset, length int) error {
		count++
		total += length
		fmt.Fprintf(table, "%d\t%d\t%s\t%s\t\n",
			index, offset, humanize.IBytes(uint64(length)), tagcodec.Tag(payload[offset]))
		return nil
	})
	if err := table.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(w, "%d %s, %s\n", count, plural(count, "value", "values"), humanize.IBytes(uint64(total)))

	if scanErr != nil {
		fmt.Fprintf(w, "error: %v\n", scanErr)
		logger.Debug("scan stopped", "framed_values", count, "framed_bytes", total, "input_bytes", len(payload))
		return &cli.ExitError{Code: 1}
	}
	return nil
}
