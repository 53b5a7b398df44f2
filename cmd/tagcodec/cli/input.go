// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode"

	"golang.org/x/term"
)

// InputParams holds the flags shared by every command that reads
// encoded input. Commands embed it in their params struct.
type InputParams struct {
	Hex bool `json:"hex" flag:"hex,x" desc:"treat input as hex-encoded bytes"`
}

// ReadInput resolves input data from either a file (the last element
// of args, if it names a regular file on disk) or stdin.
//
// When hexMode is true, the raw bytes are treated as hex: whitespace is
// stripped and the hex is decoded to binary. limit caps the number of
// bytes read before hex decoding; zero or less means no cap.
//
// Returns the input bytes and the args with any consumed file path
// removed. The caller is responsible for validating that the returned
// args are acceptable (e.g., no unexpected positional arguments).
func ReadInput(args []string, stdin io.Reader, hexMode bool, limit int64) ([]byte, []string, error) {
	source := stdin
	name := "stdin"
	remainingArgs := args

	if length := len(args); length > 0 {
		candidate := args[length-1]
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			file, err := os.Open(candidate)
			if err != nil {
				return nil, nil, Internal("read %s: %w", candidate, err)
			}
			defer file.Close()
			source = file
			name = candidate
			remainingArgs = args[:length-1]
		}
	}

	if limit > 0 {
		source = io.LimitReader(source, limit+1)
	}
	data, err := io.ReadAll(source)
	if err != nil {
		return nil, nil, Internal("read %s: %w", name, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, nil, Validation("%s exceeds the input limit of %d bytes (limits.max_input_bytes)", name, limit)
	}

	if hexMode {
		decoded, err := decodeHexInput(data)
		if err != nil {
			return nil, nil, err
		}
		data = decoded
	}

	return data, remainingArgs, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes. Whitespace between hex digit pairs is allowed
// (e.g., "11 01 05 01 6b" or "110105016b").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, Validation("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, Validation("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// RejectArgs returns a validation error when positional arguments remain
// after the input file has been consumed.
func RejectArgs(command string, args []string) error {
	if len(args) > 0 {
		return Validation("%s takes at most one file argument, got unexpected %q", command, args[0])
	}
	return nil
}

// WriteOutput writes data to w, as a hex line when hexMode is set.
func WriteOutput(w io.Writer, data []byte, hexMode bool) error {
	if hexMode {
		_, err := fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	}
	_, err := w.Write(data)
	return err
}

// CheckBinaryOutput refuses to write raw binary to a terminal. Commands
// that produce binary call it before writing to stdout.
func CheckBinaryOutput(file *os.File, hexMode bool) error {
	if !hexMode && term.IsTerminal(int(file.Fd())) {
		return Validation("refusing to write binary output to a terminal; redirect stdout or request hex output")
	}
	return nil
}
