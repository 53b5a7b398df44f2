// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import (
	"fmt"
	"io"
)

// Buffer is a fixed-capacity byte buffer with a cursor. Encoding
// writes at the cursor and advances it; decoding reads at the cursor
// and advances it. Neither ever touches bytes at or beyond the limit.
//
// A Buffer is not safe for concurrent use. Callers that share one
// across goroutines serialize access themselves; callers that only
// need an independent cursor over the same bytes use Duplicate.
type Buffer struct {
	data     []byte
	position int
	limit    int
}

// NewBuffer returns an empty buffer ready for encoding: position 0 and
// limit equal to capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, capacity), limit: capacity}
}

// WrapBuffer returns a buffer over data ready for decoding: position 0
// and limit len(data). The buffer reads data in place; it never
// modifies it unless the caller encodes into it.
func WrapBuffer(data []byte) *Buffer {
	return &Buffer{data: data, limit: len(data)}
}

// Position returns the cursor offset.
func (b *Buffer) Position() int { return b.position }

// SetPosition moves the cursor. Panics if position is outside [0, limit].
func (b *Buffer) SetPosition(position int) {
	if position < 0 || position > b.limit {
		panic(fmt.Sprintf("tagcodec: position %d outside [0, %d]", position, b.limit))
	}
	b.position = position
}

// Limit returns the offset of the first byte the buffer will not
// read or write.
func (b *Buffer) Limit() int { return b.limit }

// SetLimit changes the limit. Panics if limit is outside
// [position, capacity].
func (b *Buffer) SetLimit(limit int) {
	if limit < b.position || limit > len(b.data) {
		panic(fmt.Sprintf("tagcodec: limit %d outside [%d, %d]", limit, b.position, len(b.data)))
	}
	b.limit = limit
}

// Capacity returns the size of the underlying storage.
func (b *Buffer) Capacity() int { return len(b.data) }

// Remaining returns the number of bytes between the cursor and the limit.
func (b *Buffer) Remaining() int { return b.limit - b.position }

// Bytes returns the bytes before the cursor: after encoding, the
// encoded output. The slice aliases the buffer's storage.
func (b *Buffer) Bytes() []byte { return b.data[:b.position] }

// Unread returns the bytes between the cursor and the limit. The
// slice aliases the buffer's storage.
func (b *Buffer) Unread() []byte { return b.data[b.position:b.limit] }

// Flip switches from encoding to decoding: the limit becomes the
// current position and the cursor returns to 0.
func (b *Buffer) Flip() {
	b.limit = b.position
	b.position = 0
}

// Reset returns the cursor to 0 and the limit to capacity.
func (b *Buffer) Reset() {
	b.position = 0
	b.limit = len(b.data)
}

// Duplicate returns a buffer sharing the same storage with its own,
// independent cursor and limit.
func (b *Buffer) Duplicate() *Buffer {
	return &Buffer{data: b.data, position: b.position, limit: b.limit}
}

// ReadByte reads the byte at the cursor and advances.
func (b *Buffer) ReadByte() (byte, error) {
	if b.position >= b.limit {
		return 0, b.underflow(1)
	}
	c := b.data[b.position]
	b.position++
	return c, nil
}

// PeekByte returns the byte at the cursor without advancing.
func (b *Buffer) PeekByte() (byte, error) {
	if b.position >= b.limit {
		return 0, b.underflow(1)
	}
	return b.data[b.position], nil
}

// Read copies up to len(p) bytes from the cursor into p. It returns
// io.EOF when no bytes remain.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.position >= b.limit {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.data[b.position:b.limit])
	b.position += n
	return n, nil
}

// WriteByte writes c at the cursor and advances.
func (b *Buffer) WriteByte(c byte) error {
	if b.position >= b.limit {
		return b.overflow(1)
	}
	b.data[b.position] = c
	b.position++
	return nil
}

// Write writes all of p at the cursor or nothing at all.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) > b.Remaining() {
		return 0, b.overflow(len(p))
	}
	b.position += copy(b.data[b.position:], p)
	return len(p), nil
}

// WriteString writes all of s at the cursor or nothing at all.
func (b *Buffer) WriteString(s string) (int, error) {
	if len(s) > b.Remaining() {
		return 0, b.overflow(len(s))
	}
	b.position += copy(b.data[b.position:], s)
	return len(s), nil
}

// next returns a view of the next n bytes and advances past them.
func (b *Buffer) next(n int) ([]byte, error) {
	if n < 0 || n > b.Remaining() {
		return nil, b.underflow(n)
	}
	view := b.data[b.position : b.position+n]
	b.position += n
	return view, nil
}

// skip advances past n bytes.
func (b *Buffer) skip(n int) error {
	if n < 0 || n > b.Remaining() {
		return b.underflow(n)
	}
	b.position += n
	return nil
}

func (b *Buffer) underflow(need int) error {
	return fmt.Errorf("%w: need %d bytes at offset %d, %d remaining",
		ErrBufferUnderflow, need, b.position, b.Remaining())
}

func (b *Buffer) overflow(need int) error {
	return fmt.Errorf("%w: need %d bytes at offset %d, %d remaining",
		ErrBufferOverflow, need, b.position, b.Remaining())
}
