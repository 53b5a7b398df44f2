// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import "fmt"

// Tag is the one-byte type tag that starts every Tagged Value. Tag
// values are protocol constants: changing one breaks every encoded
// value already stored or in flight.
type Tag uint8

const (
	TagNull Tag = 0
	TagBool Tag = 1

	// TagLegacyInt16, TagLegacyInt32 and TagLegacyInt64 are the
	// fixed-width integer tags that predate the zigzag forms. Nothing
	// encodes them and every decode path rejects them with a
	// DeprecatedTypeError.
	TagLegacyInt16 Tag = 2
	TagLegacyInt32 Tag = 3
	TagLegacyInt64 Tag = 4

	TagString Tag = 5
	TagTime   Tag = 6
	TagIPv4   Tag = 7
	TagIPv6   Tag = 8

	// TagLegacyMap and TagLegacyArray carry the total payload byte
	// size in their length field. Decode-only.
	TagLegacyMap   Tag = 9
	TagLegacyArray Tag = 10

	TagBlob    Tag = 11
	TagInt16   Tag = 12
	TagInt32   Tag = 13
	TagInt64   Tag = 14
	TagFloat32 Tag = 15
	TagFloat64 Tag = 16

	// TagMap and TagArray carry the entry count in their length field.
	// Every new encode uses these.
	TagMap   Tag = 17
	TagArray Tag = 18
)

// FirstExtensionTag is the lowest tag an Extension should claim. Tags
// between TagArray and FirstExtensionTag are reserved for future
// built-in kinds.
const FirstExtensionTag Tag = 32

// Builtin reports whether t is part of the built-in catalogue
// (including the decode-only legacy tags).
func (t Tag) Builtin() bool {
	return t <= TagArray
}

// Deprecated reports whether t is one of the legacy fixed-width
// integer tags.
func (t Tag) Deprecated() bool {
	return t == TagLegacyInt16 || t == TagLegacyInt32 || t == TagLegacyInt64
}

// String returns the human-readable name of a tag.
func (t Tag) String() string {
	switch t {
	case TagNull:
		return "null"
	case TagBool:
		return "bool"
	case TagLegacyInt16:
		return "legacy-int16"
	case TagLegacyInt32:
		return "legacy-int32"
	case TagLegacyInt64:
		return "legacy-int64"
	case TagString:
		return "string"
	case TagTime:
		return "time"
	case TagIPv4:
		return "ipv4"
	case TagIPv6:
		return "ipv6"
	case TagLegacyMap:
		return "legacy-map"
	case TagLegacyArray:
		return "legacy-array"
	case TagBlob:
		return "blob"
	case TagInt16:
		return "int16"
	case TagInt32:
		return "int32"
	case TagInt64:
		return "int64"
	case TagFloat32:
		return "float32"
	case TagFloat64:
		return "float64"
	case TagMap:
		return "map"
	case TagArray:
		return "array"
	default:
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
}
