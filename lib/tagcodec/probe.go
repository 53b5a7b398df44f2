// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import "fmt"

// ObjectLength returns the total encoded length of the Tagged Value at
// the cursor without decoding it and without moving the cursor.
//
// Fixed-width kinds, strings, blobs and legacy containers are sized
// from their header alone. A count-prefixed container records how
// many children it has but not how many bytes they take, so its
// children are probed in turn; their values are still never decoded.
func ObjectLength(buf *Buffer, ext Extension) (int, error) {
	state := probeState{extension: ext}
	return state.length(buf.Duplicate())
}

// Skip advances the cursor past one Tagged Value and returns its length.
func Skip(buf *Buffer, ext Extension) (int, error) {
	length, err := ObjectLength(buf, ext)
	if err != nil {
		return 0, err
	}
	if err := buf.skip(length); err != nil {
		return 0, err
	}
	return length, nil
}

// Scan visits every Tagged Value in a concatenation, from the cursor to
// the limit, by repeated probing. fn receives each value's index, its
// offset in the buffer and its length; returning an error stops the
// scan with that error. The cursor of buf does not move.
func Scan(buf *Buffer, ext Extension, fn func(index, offset, length int) error) error {
	cursor := buf.Duplicate()
	for index := 0; cursor.Remaining() > 0; index++ {
		offset := cursor.position
		length, err := Skip(cursor, ext)
		if err != nil {
			return fmt.Errorf("value %d at offset %d: %w", index, offset, err)
		}
		if err := fn(index, offset, length); err != nil {
			return err
		}
	}
	return nil
}

type probeState struct {
	extension Extension
	depth     nesting
}

// length sizes the value at the cursor of a scratch buffer. The
// cursor may move; callers own the buffer.
func (p *probeState) length(buf *Buffer) (int, error) {
	start := buf.position
	c, err := buf.PeekByte()
	if err != nil {
		return 0, err
	}
	tag := Tag(c)

	var length int
	switch tag {
	case TagNull:
		length = NullLength
	case TagBool:
		length = BoolLength
	case TagTime:
		length = TimeLength
	case TagIPv4:
		length = IPv4Length
	case TagIPv6:
		length = IPv6Length
	case TagFloat32:
		length = Float32Length
	case TagFloat64:
		length = Float64Length
	case TagInt16, TagInt32, TagInt64:
		buf.position++
		if _, err := DecodeRawNumber(buf); err != nil {
			return 0, err
		}
		return buf.position - start, nil
	case TagString, TagBlob, TagLegacyMap, TagLegacyArray:
		buf.position++
		payload, err := decodeLength(buf)
		if err != nil {
			return 0, err
		}
		length = buf.position - start + payload
	case TagMap, TagArray:
		return p.containerLength(buf, tag)
	case TagLegacyInt16, TagLegacyInt32, TagLegacyInt64:
		return 0, &DeprecatedTypeError{Tag: tag, Offset: start}
	default:
		if tag.Builtin() || p.extension == nil {
			return 0, unsupportedTag(tag)
		}
		length, err = p.extension.ObjectLength(buf)
		if err != nil {
			return 0, err
		}
	}

	// The claimed length must fit in what the buffer holds, or a
	// skip over it would run past the limit.
	if length > buf.limit-start {
		buf.position = start
		return 0, buf.underflow(length)
	}
	return length, nil
}

func (p *probeState) containerLength(buf *Buffer, tag Tag) (int, error) {
	if err := p.depth.enter(); err != nil {
		return 0, err
	}
	defer p.depth.leave()

	start := buf.position
	buf.position++
	count, err := decodeLength(buf)
	if err != nil {
		return 0, err
	}
	for range count {
		if tag == TagMap {
			if _, err := expectTag(buf.Duplicate(), TagString); err != nil {
				return 0, err
			}
			if err := p.skipChild(buf); err != nil {
				return 0, err
			}
		}
		if err := p.skipChild(buf); err != nil {
			return 0, err
		}
	}
	return buf.position - start, nil
}

func (p *probeState) skipChild(buf *Buffer) error {
	childStart := buf.position
	length, err := p.length(buf)
	if err != nil {
		return err
	}
	buf.position = childStart
	return buf.skip(length)
}
