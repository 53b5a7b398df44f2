// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lequynhnhu/core/cmd/tagcodec/cli"
	"github.com/lequynhnhu/core/lib/envelope"
	"github.com/lequynhnhu/core/lib/transcode"
)

func TestDecodeValues(t *testing.T) {
	data := marshal(t, sampleMap())
	wrapped, err := envelope.Wrap(data, envelope.Options{Compression: envelope.CompressionLZ4})
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}

	tests := []struct {
		name    string
		input   []byte
		options decodeOptions
		want    string
	}{
		{
			name:    "compact",
			input:   data,
			options: decodeOptions{to: formatJSON, compact: true},
			want:    `{"id":7,"tags":["a",null]}` + "\n",
		},
		{
			name:    "indented",
			input:   data,
			options: decodeOptions{to: formatJSON},
			want:    "{\n  \"id\": 7,\n  \"tags\": [\n    \"a\",\n    null\n  ]\n}\n",
		},
		{
			name:    "envelope",
			input:   wrapped,
			options: decodeOptions{to: formatJSON, compact: true},
			want:    `{"id":7,"tags":["a",null]}` + "\n",
		},
		{
			name:    "slurp",
			input:   marshal(t, 1, "a", nil),
			options: decodeOptions{to: formatJSON, compact: true, slurp: true},
			want:    `[1,"a",null]` + "\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			if err := decodeValues(test.input, &output, test.options, cli.DiscardLogger()); err != nil {
				t.Fatalf("decodeValues: %v", err)
			}
			if output.String() != test.want {
				t.Errorf("output = %q, want %q", output.String(), test.want)
			}
		})
	}
}

func TestDecodeValues_BinaryOutput(t *testing.T) {
	var output bytes.Buffer
	if err := decodeValues(marshal(t, sampleMap()), &output, decodeOptions{to: formatCBOR}, cli.DiscardLogger()); err != nil {
		t.Fatalf("decodeValues: %v", err)
	}
	want, err := transcode.ToCBOR(sampleMap())
	if err != nil {
		t.Fatalf("ToCBOR: %v", err)
	}
	if !bytes.Equal(output.Bytes(), want) {
		t.Errorf("output = %x, want %x", output.Bytes(), want)
	}
}

func TestDecodeValues_Errors(t *testing.T) {
	identity, err := envelope.GenerateIdentity()
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	sealed, err := envelope.Seal(marshal(t, "x"), []string{identity.Recipient})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	wrapped, err := envelope.Wrap(marshal(t, strings.Repeat("x", 100)), envelope.Options{})
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}

	tests := []struct {
		name     string
		input    []byte
		options  decodeOptions
		category cli.ErrorCategory
		message  string
	}{
		{"empty", nil, decodeOptions{to: formatJSON}, cli.CategoryValidation, "empty input"},
		{"trailing bytes", marshal(t, 1, 2), decodeOptions{to: formatJSON}, cli.CategoryValidation, "2 trailing bytes"},
		{"sealed", sealed, decodeOptions{to: formatJSON}, cli.CategoryValidation, "tagcodec open"},
		{"envelope over limit", wrapped, decodeOptions{to: formatJSON, limit: 10}, cli.CategoryValidation, "limit"},
		{"malformed", []byte{0x05, 0x09, 'a'}, decodeOptions{to: formatJSON}, cli.CategoryInternal, "decode"},
		{"slurp malformed tail", append(marshal(t, 1), 0x03), decodeOptions{to: formatJSON, slurp: true}, cli.CategoryInternal, "value 1 at offset 2"},
		{"unknown format", marshal(t, 1), decodeOptions{to: "xml"}, cli.CategoryValidation, "unknown output format"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			err := decodeValues(test.input, &output, test.options, cli.DiscardLogger())
			if err == nil {
				t.Fatal("expected an error")
			}
			if cli.Category(err) != test.category {
				t.Errorf("category = %q, want %q (error: %v)", cli.Category(err), test.category, err)
			}
			if !strings.Contains(err.Error(), test.message) {
				t.Errorf("error %q does not mention %q", err, test.message)
			}
		})
	}
}
