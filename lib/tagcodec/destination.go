// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import "io"

// Destination receives encoded bytes. A fixed-capacity *Buffer and a
// growable sink (*bytes.Buffer, *bufio.Writer) both satisfy it, so
// every encoding rule is written once for both targets.
type Destination interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
}

// lengthCounter is the measure-only Destination behind LengthOf: it
// counts bytes and stores none.
type lengthCounter struct {
	n int
}

func (c *lengthCounter) Write(p []byte) (int, error) {
	c.n += len(p)
	return len(p), nil
}

func (c *lengthCounter) WriteByte(byte) error {
	c.n++
	return nil
}

func (c *lengthCounter) WriteString(s string) (int, error) {
	c.n += len(s)
	return len(s), nil
}
