// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import (
	"encoding/binary"
	"math"
	"net/netip"
	"time"
)

// Decode decodes the Tagged Value at the cursor and advances past it.
// Tags outside the built-in catalogue go to ext, which may be nil.
//
// On error the cursor position is unspecified.
func Decode(buf *Buffer, ext Extension) (any, error) {
	state := decodeState{extension: ext}
	return state.decode(buf)
}

// DecodeMap decodes a map in either framing.
func DecodeMap(buf *Buffer, ext Extension) (*Map, error) {
	state := decodeState{extension: ext}
	return state.decodeMap(buf)
}

// DecodeArray decodes an array in either framing.
func DecodeArray(buf *Buffer, ext Extension) ([]any, error) {
	state := decodeState{extension: ext}
	return state.decodeArray(buf)
}

type decodeState struct {
	extension Extension
	depth     nesting
}

func (d *decodeState) decode(buf *Buffer) (any, error) {
	c, err := buf.PeekByte()
	if err != nil {
		return nil, err
	}
	switch tag := Tag(c); tag {
	case TagNull:
		buf.position++
		return nil, nil
	case TagBool:
		return DecodeBool(buf)
	case TagString:
		return DecodeString(buf)
	case TagTime:
		return DecodeTime(buf)
	case TagIPv4, TagIPv6:
		return DecodeAddr(buf)
	case TagBlob:
		return DecodeBlob(buf)
	case TagInt16:
		return DecodeInt16(buf)
	case TagInt32:
		return DecodeInt32(buf)
	case TagInt64:
		return DecodeInt64(buf)
	case TagFloat32:
		return DecodeFloat32(buf)
	case TagFloat64:
		return DecodeFloat64(buf)
	case TagMap, TagLegacyMap:
		return d.decodeMap(buf)
	case TagArray, TagLegacyArray:
		return d.decodeArray(buf)
	case TagLegacyInt16, TagLegacyInt32, TagLegacyInt64:
		return nil, &DeprecatedTypeError{Tag: tag, Offset: buf.position}
	default:
		if tag.Builtin() || d.extension == nil {
			return nil, unsupportedTag(tag)
		}
		return d.extension.Decode(buf)
	}
}

// expectTag consumes the tag byte at the cursor if it is one of the
// accepted tags. On a mismatch the cursor does not move.
func expectTag(buf *Buffer, accepted ...Tag) (Tag, error) {
	c, err := buf.PeekByte()
	if err != nil {
		return 0, err
	}
	tag := Tag(c)
	for _, want := range accepted {
		if tag == want {
			buf.position++
			return tag, nil
		}
	}
	if tag.Deprecated() {
		return 0, &DeprecatedTypeError{Tag: tag, Offset: buf.position}
	}
	return 0, &TypeMismatchError{Expected: accepted[0], Actual: tag, Offset: buf.position}
}

func DecodeNull(buf *Buffer) error {
	_, err := expectTag(buf, TagNull)
	return err
}

// DecodeBool reads a boolean. A payload of 1 is true; every other
// payload byte is false.
func DecodeBool(buf *Buffer) (bool, error) {
	if _, err := expectTag(buf, TagBool); err != nil {
		return false, err
	}
	c, err := buf.ReadByte()
	if err != nil {
		return false, err
	}
	return c == 1, nil
}

func DecodeInt16(buf *Buffer) (int16, error) {
	if _, err := expectTag(buf, TagInt16); err != nil {
		return 0, err
	}
	raw, err := DecodeRawNumber(buf)
	if err != nil {
		return 0, err
	}
	return Unzigzag16(uint16(raw)), nil
}

func DecodeInt32(buf *Buffer) (int32, error) {
	if _, err := expectTag(buf, TagInt32); err != nil {
		return 0, err
	}
	raw, err := DecodeRawNumber(buf)
	if err != nil {
		return 0, err
	}
	return Unzigzag32(uint32(raw)), nil
}

func DecodeInt64(buf *Buffer) (int64, error) {
	if _, err := expectTag(buf, TagInt64); err != nil {
		return 0, err
	}
	raw, err := DecodeRawNumber(buf)
	if err != nil {
		return 0, err
	}
	return Unzigzag64(raw), nil
}

func DecodeFloat32(buf *Buffer) (float32, error) {
	if _, err := expectTag(buf, TagFloat32); err != nil {
		return 0, err
	}
	payload, err := buf.next(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(payload)), nil
}

func DecodeFloat64(buf *Buffer) (float64, error) {
	if _, err := expectTag(buf, TagFloat64); err != nil {
		return 0, err
	}
	payload, err := buf.next(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(payload)), nil
}

// DecodeTime reads a timestamp. The result is in UTC.
func DecodeTime(buf *Buffer) (time.Time, error) {
	if _, err := expectTag(buf, TagTime); err != nil {
		return time.Time{}, err
	}
	payload, err := buf.next(8)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(int64(binary.BigEndian.Uint64(payload))).UTC(), nil
}

func DecodeIPv4(buf *Buffer) (netip.Addr, error) {
	if _, err := expectTag(buf, TagIPv4); err != nil {
		return netip.Addr{}, err
	}
	payload, err := buf.next(4)
	if err != nil {
		return netip.Addr{}, err
	}
	return netip.AddrFrom4([4]byte(payload)), nil
}

func DecodeIPv6(buf *Buffer) (netip.Addr, error) {
	if _, err := expectTag(buf, TagIPv6); err != nil {
		return netip.Addr{}, err
	}
	payload, err := buf.next(16)
	if err != nil {
		return netip.Addr{}, err
	}
	return netip.AddrFrom16([16]byte(payload)), nil
}

// DecodeAddr reads either address kind.
func DecodeAddr(buf *Buffer) (netip.Addr, error) {
	c, err := buf.PeekByte()
	if err != nil {
		return netip.Addr{}, err
	}
	if Tag(c) == TagIPv6 {
		return DecodeIPv6(buf)
	}
	return DecodeIPv4(buf)
}

// DecodeString reads a string. The bytes are returned as written,
// without UTF-8 validation.
func DecodeString(buf *Buffer) (string, error) {
	if _, err := expectTag(buf, TagString); err != nil {
		return "", err
	}
	length, err := decodeLength(buf)
	if err != nil {
		return "", err
	}
	text, err := buf.next(length)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// DecodeBlob reads a blob. The result is a copy and does not alias the
// buffer.
func DecodeBlob(buf *Buffer) ([]byte, error) {
	if _, err := expectTag(buf, TagBlob); err != nil {
		return nil, err
	}
	length, err := decodeLength(buf)
	if err != nil {
		return nil, err
	}
	payload, err := buf.next(length)
	if err != nil {
		return nil, err
	}
	blob := make([]byte, length)
	copy(blob, payload)
	return blob, nil
}
