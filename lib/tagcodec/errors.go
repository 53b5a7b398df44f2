// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferUnderflow is returned when a decode needs more bytes
	// than remain before the buffer's limit.
	ErrBufferUnderflow = errors.New("tagcodec: buffer underflow")

	// ErrBufferOverflow is returned when an encode into a fixed Buffer
	// needs more room than remains before its limit.
	ErrBufferOverflow = errors.New("tagcodec: buffer overflow")

	// ErrMalformedRawNumber is returned when a raw number carries more
	// continuation digits than any width can produce.
	ErrMalformedRawNumber = errors.New("tagcodec: malformed raw number")

	// ErrMaxDepth is returned when containers nest deeper than
	// MaxDepth, on encode or decode.
	ErrMaxDepth = errors.New("tagcodec: maximum nesting depth exceeded")
)

// TypeMismatchError reports that a typed decode accessor found a
// different tag than the one it reads. Offset is the position of the
// offending tag byte.
type TypeMismatchError struct {
	Expected Tag
	Actual   Tag
	Offset   int
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("tagcodec: type mismatch at offset %d: expected %s (%d), found %s (%d)",
		e.Offset, e.Expected, uint8(e.Expected), e.Actual, uint8(e.Actual))
}

// UnsupportedTypeError reports a value kind with no built-in rule and
// no Extension to handle it. On encode, Kind names the Go type; on
// decode, it names the unknown tag.
type UnsupportedTypeError struct {
	Kind string
}

func (e *UnsupportedTypeError) Error() string {
	return "tagcodec: unsupported type: " + e.Kind
}

// DeprecatedTypeError reports one of the legacy fixed-width integer
// tags. These are never interpreted: old producers wrote them with
// ambiguous widths, so reading them could silently return wrong values.
type DeprecatedTypeError struct {
	Tag    Tag
	Offset int
}

func (e *DeprecatedTypeError) Error() string {
	return fmt.Sprintf("tagcodec: deprecated number type %s (%d) at offset %d",
		e.Tag, uint8(e.Tag), e.Offset)
}

// FramingError reports a byte-length-prefixed container whose
// children do not end exactly at the declared payload size.
type FramingError struct {
	Tag      Tag
	Offset   int
	Declared int
	Consumed int
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("tagcodec: %s at offset %d declares %d payload bytes, children consumed %d",
		e.Tag, e.Offset, e.Declared, e.Consumed)
}

func unsupportedValue(value any) error {
	return &UnsupportedTypeError{Kind: fmt.Sprintf("%T", value)}
}

func unsupportedTag(tag Tag) error {
	return &UnsupportedTypeError{Kind: fmt.Sprintf("tag %d", uint8(tag))}
}
