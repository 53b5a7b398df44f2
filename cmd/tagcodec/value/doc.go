// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package value implements the tagcodec commands that read and write
// Tagged Values: encode, decode, dump and scan.
//
// Every command accepts an optional trailing file path argument; without
// one, input is read from stdin. With --hex, input is hex text rather
// than raw bytes. Input that starts with the envelope magic is verified
// and unwrapped transparently, so the commands work the same on bare
// values and on envelopes produced by "tagcodec encode --envelope".
//
// Each command's Run is a thin shell over a function taking the input
// bytes and an io.Writer (encodeValue, decodeValues, dumpValues,
// scanValues), which is where the behavior lives and what the tests
// exercise.
package value
