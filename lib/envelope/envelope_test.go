// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/lequynhnhu/core/lib/tagcodec"
)

func samplePayload(t *testing.T) []byte {
	t.Helper()
	rows := make([]any, 0, 200)
	for i := range 200 {
		row := tagcodec.NewMap(3)
		row.Set("index", int64(i))
		row.Set("status", "pending review")
		row.Set("owner", "team/platform")
		rows = append(rows, row)
	}
	data, err := tagcodec.Marshal(rows, nil)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return data
}

func randomBytes(size int) []byte {
	random := rand.New(rand.NewChaCha8([32]byte{'e', 'n', 'v'}))
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(random.Uint32())
	}
	return data
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	payload := samplePayload(t)
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			wrapped, err := Wrap(payload, Options{Compression: compression})
			if err != nil {
				t.Fatalf("Wrap: %v", err)
			}
			if !IsEnvelope(wrapped) {
				t.Fatal("wrapped data does not carry the magic")
			}
			if compression != CompressionNone && len(wrapped) >= len(payload) {
				t.Errorf("compressed envelope is %d bytes for a %d byte payload", len(wrapped), len(payload))
			}

			got, header, err := Unwrap(wrapped)
			if err != nil {
				t.Fatalf("Unwrap: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Error("payload changed in the round trip")
			}
			if header.Compression != compression {
				t.Errorf("header compression = %s, want %s", header.Compression, compression)
			}
			if header.Length != len(payload) || header.Version != Version {
				t.Errorf("header = %+v", header)
			}
			if header.Digest != Digest(payload) {
				t.Error("header digest does not match the payload")
			}
		})
	}
}

func TestWrapIncompressibleFallsBack(t *testing.T) {
	payload := randomBytes(4096)
	for _, compression := range []Compression{CompressionLZ4, CompressionZstd} {
		wrapped, err := Wrap(payload, Options{Compression: compression})
		if err != nil {
			t.Fatalf("Wrap(%s): %v", compression, err)
		}
		got, header, err := Unwrap(wrapped)
		if err != nil {
			t.Fatalf("Unwrap(%s): %v", compression, err)
		}
		if header.Compression != CompressionNone {
			t.Errorf("%s: header compression = %s, want none", compression, header.Compression)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("%s: payload changed", compression)
		}
	}
}

func TestWrapEmptyPayload(t *testing.T) {
	wrapped, err := Wrap(nil, Options{Compression: CompressionZstd})
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	got, _, err := Unwrap(wrapped)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Unwrap = % X, want empty", got)
	}
}

func TestUnwrapDetectsCorruption(t *testing.T) {
	payload := []byte("tagged bytes")
	wrapped, err := Wrap(payload, Options{})
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	wrapped[len(wrapped)-1] ^= 0x01
	if _, _, err := Unwrap(wrapped); !errors.Is(err, ErrDigestMismatch) {
		t.Errorf("Unwrap of a flipped body byte: got %v, want ErrDigestMismatch", err)
	}
}

func TestUnwrapRejectsMalformedHeaders(t *testing.T) {
	valid, err := Wrap([]byte("payload"), Options{})
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	badVersion := bytes.Clone(valid)
	badVersion[3] = 9
	badCompression := bytes.Clone(valid)
	badCompression[4] = 7

	tests := []struct {
		name    string
		data    []byte
		wantErr string
	}{
		{"bare value", []byte{0x05, 0x01, 'x'}, "missing magic"},
		{"magic only", []byte(Magic), "reading version"},
		{"bad version", badVersion, "unsupported version 9"},
		{"bad compression", badCompression, "unsupported compression"},
		{"truncated digest", valid[:10], "truncated digest"},
		{"short body", valid[:len(valid)-1], "does not match header length"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := Unwrap(test.data)
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Unwrap: got %v, want error containing %q", err, test.wantErr)
			}
		})
	}
}

func TestUnwrapLimit(t *testing.T) {
	wrapped, err := Wrap(make([]byte, 1000), Options{Compression: CompressionZstd})
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if _, _, err := UnwrapLimit(wrapped, 999); !errors.Is(err, ErrTooLarge) {
		t.Errorf("UnwrapLimit below the payload size: got %v, want ErrTooLarge", err)
	}
	if _, _, err := UnwrapLimit(wrapped, 1000); err != nil {
		t.Errorf("UnwrapLimit at the payload size: %v", err)
	}
}

func TestParseCompression(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		parsed, err := ParseCompression(compression.String())
		if err != nil {
			t.Fatalf("ParseCompression(%q): %v", compression, err)
		}
		if parsed != compression {
			t.Errorf("ParseCompression(%q) = %s", compression, parsed)
		}
	}
	if _, err := ParseCompression("brotli"); err == nil {
		t.Error("ParseCompression accepted an unknown name")
	}
	if got := Compression(9).String(); got != "unknown(9)" {
		t.Errorf("String of an unknown compression = %q", got)
	}
}

func BenchmarkWrapZstd(b *testing.B) {
	payload := bytes.Repeat([]byte("tagged value payload "), 4096)
	for b.Loop() {
		if _, err := Wrap(payload, Options{Compression: CompressionZstd}); err != nil {
			b.Fatal(err)
		}
	}
}
