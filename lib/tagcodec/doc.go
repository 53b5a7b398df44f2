// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tagcodec implements a compact, self-describing binary
// encoding for structured values: booleans, integers, floats, strings,
// timestamps, IP addresses, blobs, and nested maps and arrays. Every
// value is a Tagged Value, one tag byte followed by a payload whose
// shape the tag determines. No schema travels with the data.
//
// Integers, lengths and element counts use a raw number: big-endian
// base-128 digits with bit 7 set on every digit but the last. Signed
// integers are zigzag-mapped first so small negative values stay short.
//
// There are two ways to produce bytes:
//
//	err := tagcodec.Write(w, value, nil)       // stream into any Destination
//	data, err := tagcodec.Marshal(value, nil)  // measure, allocate, encode
//
// and one way to consume them:
//
//	buf := tagcodec.WrapBuffer(data)
//	value, err := tagcodec.Decode(buf, nil)
//
// Decoded maps are *Map values that keep wire order. Decoding accepts
// both container framings: the current count-prefixed one (tags 17 and
// 18) and the legacy byte-length-prefixed one (tags 9 and 10), which
// is never written. The legacy fixed-width integer tags 2, 3 and 4 are
// always rejected.
//
// ObjectLength, Skip and Scan size values without decoding them, for
// random access into concatenated values.
//
// Values outside the built-in set go through an Extension passed to
// each call. The package has no global state: every call is
// independent and safe to run concurrently with any other call that
// does not share its Buffer.
package tagcodec
