// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/lequynhnhu/core/cmd/tagcodec/cli"
	"github.com/lequynhnhu/core/lib/envelope"
	"github.com/lequynhnhu/core/lib/transcode"
)

// Formats accepted by --from and --to.
const (
	formatJSON    = "json"
	formatCBOR    = "cbor"
	formatMsgpack = "msgpack"
)

// unwrapInput returns the Tagged Value bytes carried by data: the
// verified payload when data is an envelope, data itself otherwise.
// limit caps the declared payload size.
func unwrapInput(data []byte, limit int, logger *slog.Logger) ([]byte, error) {
	if envelope.IsSealed(data) {
		return nil, cli.Validation("input is age-sealed; run 'tagcodec open' first")
	}
	if !envelope.IsEnvelope(data) {
		return data, nil
	}

	payload, header, err := envelope.UnwrapLimit(data, limit)
	switch {
	case errors.Is(err, envelope.ErrTooLarge):
		return nil, cli.Validation("%w (limits.max_input_bytes)", err)
	case err != nil:
		return nil, cli.Internal("unwrap envelope: %w", err)
	}
	logger.Debug("unwrapped envelope",
		"compression", header.Compression.String(),
		"body_bytes", header.BodySize,
		"payload_bytes", header.Length,
	)
	return payload, nil
}

// parseValue reads one value in the named foreign format.
func parseValue(data []byte, format string) (any, error) {
	var (
		value any
		err   error
	)
	switch format {
	case formatJSON:
		value, err = transcode.FromJSON(data)
	case formatCBOR:
		value, err = transcode.FromCBOR(data)
	case formatMsgpack:
		value, err = transcode.FromMsgpack(data)
	default:
		return nil, cli.Validation("unknown input format %q (want json, cbor, or msgpack)", format)
	}
	if err != nil {
		return nil, cli.Validation("parse %s input: %w", format, err)
	}
	return value, nil
}

// writeValue renders a decoded value in the named foreign format. JSON
// output ends with a newline; the binary formats are written as is.
func writeValue(w io.Writer, value any, format string, compact bool) error {
	var (
		output []byte
		err    error
	)
	switch format {
	case formatJSON:
		output, err = transcode.ToJSON(value, compact)
		if err == nil {
			output = append(output, '\n')
		}
	case formatCBOR:
		output, err = transcode.ToCBOR(value)
	case formatMsgpack:
		output, err = transcode.ToMsgpack(value)
	default:
		return cli.Validation("unknown output format %q (want json, cbor, or msgpack)", format)
	}
	if err != nil {
		return cli.Internal("encode %s: %w", format, err)
	}
	if _, err := w.Write(output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// isBinaryFormat reports whether format produces bytes unfit for a
// terminal.
func isBinaryFormat(format string) bool {
	return format == formatCBOR || format == formatMsgpack
}
