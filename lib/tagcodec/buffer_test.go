// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestBufferEncodeFlipDecode(t *testing.T) {
	buf := NewBuffer(32)
	for _, value := range []any{"a", int64(7), true} {
		if err := Encode(buf, value, nil); err != nil {
			t.Fatalf("Encode(%v): %v", value, err)
		}
	}
	written := buf.Position()
	buf.Flip()
	if buf.Position() != 0 || buf.Limit() != written {
		t.Fatalf("after Flip: position %d limit %d, want 0 and %d", buf.Position(), buf.Limit(), written)
	}

	var got []any
	for buf.Remaining() > 0 {
		value, err := Decode(buf, nil)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		got = append(got, value)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != int64(7) || got[2] != true {
		t.Errorf("decoded %v", got)
	}

	buf.Reset()
	if buf.Position() != 0 || buf.Limit() != buf.Capacity() {
		t.Errorf("after Reset: position %d limit %d capacity %d", buf.Position(), buf.Limit(), buf.Capacity())
	}
}

func TestBufferDuplicateIsIndependent(t *testing.T) {
	buf := WrapBuffer([]byte{1, 2, 3})
	duplicate := buf.Duplicate()
	if _, err := duplicate.ReadByte(); err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if buf.Position() != 0 || duplicate.Position() != 1 {
		t.Errorf("positions: original %d duplicate %d", buf.Position(), duplicate.Position())
	}
}

func TestBufferLimit(t *testing.T) {
	buf := WrapBuffer([]byte{0x05, 0x02, 'h', 'i', 0x00})
	buf.SetLimit(3)
	if _, err := DecodeString(buf); !errors.Is(err, ErrBufferUnderflow) {
		t.Errorf("DecodeString past the limit: got %v, want ErrBufferUnderflow", err)
	}
	if !bytes.Equal(buf.Unread(), []byte{'h'}) {
		t.Errorf("Unread = % X", buf.Unread())
	}
}

func TestBufferWriteAllOrNothing(t *testing.T) {
	buf := NewBuffer(4)
	if _, err := buf.Write([]byte{1, 2, 3, 4, 5}); !errors.Is(err, ErrBufferOverflow) {
		t.Fatalf("Write: got %v, want ErrBufferOverflow", err)
	}
	if buf.Position() != 0 {
		t.Errorf("failed Write advanced the cursor to %d", buf.Position())
	}
	if _, err := buf.WriteString("abcd"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if err := buf.WriteByte(0); !errors.Is(err, ErrBufferOverflow) {
		t.Errorf("WriteByte at the limit: got %v, want ErrBufferOverflow", err)
	}
	if string(buf.Bytes()) != "abcd" {
		t.Errorf("Bytes = %q", buf.Bytes())
	}
}

func TestBufferRead(t *testing.T) {
	buf := WrapBuffer([]byte("abc"))
	data, err := io.ReadAll(buf)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "abc" {
		t.Errorf("ReadAll = %q", data)
	}
}

func TestBufferSetPositionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SetPosition past the limit did not panic")
		}
	}()
	WrapBuffer([]byte{1}).SetPosition(2)
}
