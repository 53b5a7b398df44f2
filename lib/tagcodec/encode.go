// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import (
	"fmt"
	"net"
	"net/netip"
	"time"
)

// MaxDepth bounds container nesting on encode and decode.
const MaxDepth = 512

// Write encodes value to dst in a single pass. ext may be nil.
func Write(dst Destination, value any, ext Extension) error {
	state := encodeState{extension: ext}
	return state.encode(dst, value)
}

// Encode encodes value into buf at its cursor. If buf runs out of room
// the error wraps ErrBufferOverflow and the cursor position is
// unspecified; callers that want to avoid that size buf with LengthOf
// first, or use Marshal.
func Encode(buf *Buffer, value any, ext Extension) error {
	state := encodeState{extension: ext}
	return state.encode(buf, value)
}

// LengthOf returns the exact number of bytes Write and Encode produce
// for value, without producing them.
func LengthOf(value any, ext Extension) (int, error) {
	state := encodeState{extension: ext}
	var counter lengthCounter
	if err := state.encode(&counter, value); err != nil {
		return 0, err
	}
	return counter.n, nil
}

// Marshal measures value, allocates a buffer of exactly that size and
// encodes into it. Strings are prepared once and reused by both passes.
func Marshal(value any, ext Extension) ([]byte, error) {
	state := encodeState{extension: ext, strings: make(stringCache)}

	var counter lengthCounter
	if err := state.encode(&counter, value); err != nil {
		return nil, err
	}

	buf := NewBuffer(counter.n)
	if err := state.encode(buf, value); err != nil {
		return nil, err
	}
	if buf.Remaining() != 0 {
		return nil, fmt.Errorf("tagcodec: encoded %d bytes but measured %d", buf.Position(), counter.n)
	}
	return buf.Bytes(), nil
}

// encodeState is the working state of one top-level encode call. The
// measuring and the encoding of a value run through the same walk;
// only the Destination differs.
type encodeState struct {
	extension Extension
	strings   stringCache
	depth     nesting
}

func (s *encodeState) encode(dst Destination, value any) error {
	switch v := value.(type) {
	case nil:
		return WriteNull(dst)
	case string:
		return s.writeString(dst, v)
	case bool:
		return WriteBool(dst, v)
	case int64:
		return WriteInt64(dst, v)
	case int:
		return WriteInt64(dst, int64(v))
	case int32:
		return WriteInt32(dst, v)
	case int16:
		return WriteInt16(dst, v)
	case float32:
		return WriteFloat32(dst, v)
	case float64:
		return WriteFloat64(dst, v)
	case time.Time:
		return WriteTime(dst, v)
	case netip.Addr:
		return WriteAddr(dst, v)
	case net.IP:
		addr, ok := addrFromIP(v)
		if !ok {
			return &UnsupportedTypeError{Kind: fmt.Sprintf("net.IP of length %d", len(v))}
		}
		return WriteAddr(dst, addr)
	case []byte:
		return WriteBlob(dst, v)
	case *Map:
		if v == nil {
			return WriteNull(dst)
		}
		return s.writeMap(dst, v)
	case map[string]any:
		return s.writeGoMap(dst, v)
	case []Entry:
		return s.writeEntries(dst, v)
	case []any:
		return s.writeArray(dst, v)
	case []string:
		return writeSlice(s, dst, v, s.writeString)
	case []bool:
		return writeSlice(s, dst, v, WriteBool)
	case []int16:
		return writeSlice(s, dst, v, WriteInt16)
	case []int32:
		return writeSlice(s, dst, v, WriteInt32)
	case []int64:
		return writeSlice(s, dst, v, WriteInt64)
	case []int:
		return writeSlice(s, dst, v, func(dst Destination, element int) error {
			return WriteInt64(dst, int64(element))
		})
	case []float32:
		return writeSlice(s, dst, v, WriteFloat32)
	case []float64:
		return writeSlice(s, dst, v, WriteFloat64)
	default:
		return s.writeExtension(dst, value)
	}
}

// writeExtension is the fallback arm. In measure mode the extension
// reports its own length instead of producing bytes to count.
func (s *encodeState) writeExtension(dst Destination, value any) error {
	if s.extension == nil {
		return unsupportedValue(value)
	}
	if counter, ok := dst.(*lengthCounter); ok {
		length, err := s.extension.LengthOf(value)
		if err != nil {
			return err
		}
		counter.n += length
		return nil
	}
	return s.extension.Write(dst, value)
}

func (s *encodeState) writeString(dst Destination, value string) error {
	entry := s.strings.get(value)
	if counter, ok := dst.(*lengthCounter); ok {
		counter.n += entry.length
		return nil
	}
	return writeText(dst, entry.text)
}

// nesting tracks container depth during one walk.
type nesting int

func (n *nesting) enter() error {
	*n++
	if *n > MaxDepth {
		return fmt.Errorf("%w: more than %d levels", ErrMaxDepth, MaxDepth)
	}
	return nil
}

func (n *nesting) leave() {
	*n--
}
