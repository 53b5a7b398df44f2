// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

// Extension plugs application-defined value kinds into the tag space.
// The core consults it only for values no built-in kind matches (on
// encode) and for tags outside the built-in catalogue (on decode and
// length probing). Extension tags must not collide with built-in tags;
// use FirstExtensionTag and above.
//
// An Extension is passed explicitly to every call that may need it.
// There is no registry, so one process can use different extension
// sets for different calls.
type Extension interface {
	// Write encodes value, tag byte included. Values the extension
	// does not handle must produce an *UnsupportedTypeError.
	Write(dst Destination, value any) error

	// LengthOf returns the exact number of bytes Write produces for
	// value.
	LengthOf(value any) (int, error)

	// Decode decodes one value. The cursor is at its tag byte and
	// must end just past its last byte.
	Decode(buf *Buffer) (any, error)

	// ObjectLength returns the total length of the value whose tag
	// byte is at the cursor, without moving the cursor.
	ObjectLength(buf *Buffer) (int, error)
}
