// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope frames encoded tagcodec values for storage and
// transport. The payload is treated as opaque bytes: an envelope adds
// optional compression, a BLAKE3 integrity digest and, through Seal
// and Open, age encryption on top of it without touching the value
// encoding itself.
//
// Wire layout:
//
//	"TGE" | version (1) | compression (1) | raw number: payload length
//	| BLAKE3-256 keyed digest of the payload (32) | body
//
// The length uses the same raw number encoding as the values inside.
// The digest covers the uncompressed payload, so it survives a change
// of compression algorithm.
//
// Typical use:
//
//	wrapped, err := envelope.Wrap(data, envelope.Options{Compression: envelope.CompressionZstd})
//	payload, header, err := envelope.Unwrap(wrapped)
package envelope
