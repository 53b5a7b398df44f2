// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import (
	"fmt"
	"math"
	"math/bits"
)

// Width is the bit width of the integer a raw number was produced from.
// It only matters for negative inputs, which always use the maximum
// digit count for their width.
type Width uint8

const (
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// maxRawNumberDigits bounds every raw number: ten 7-bit digits cover
// 70 bits.
const maxRawNumberDigits = 10

// MaxDigits returns the digit count used for negative values of this
// width: 3, 5 or 10.
func (w Width) MaxDigits() int {
	switch w {
	case Width16:
		return 3
	case Width32:
		return 5
	default:
		return maxRawNumberDigits
	}
}

// LengthOfRawNumber returns the number of digits WriteRawNumber emits
// for value. Non-negative values use the shortest encoding; negative
// values use width.MaxDigits().
func LengthOfRawNumber(width Width, value int64) int {
	if value < 0 {
		return width.MaxDigits()
	}
	if value <= 0x7F {
		return 1
	}
	if value <= 0x3FFF {
		return 2
	}
	return (63-bits.LeadingZeros64(uint64(value)))/7 + 1
}

// WriteRawNumber writes value as big-endian base-128 digits, setting
// bit 7 on every digit but the last.
func WriteRawNumber(dst Destination, width Width, value int64) error {
	length := LengthOfRawNumber(width, value)
	for i := range length {
		if err := dst.WriteByte(rawDigit(value, i, length)); err != nil {
			return err
		}
	}
	return nil
}

// AppendRawNumber appends the digits of value to dst.
func AppendRawNumber(dst []byte, width Width, value int64) []byte {
	length := LengthOfRawNumber(width, value)
	for i := range length {
		dst = append(dst, rawDigit(value, i, length))
	}
	return dst
}

// rawDigit returns digit i (most significant first) of a raw number
// of the given length. The shift is arithmetic so negative values fill
// their leading digits with ones.
func rawDigit(value int64, i, length int) byte {
	digit := byte(value>>(7*uint(length-i-1))) & 0x7F
	if i != length-1 {
		digit |= 0x80
	}
	return digit
}

// DecodeRawNumber reads one raw number at the cursor. Bits shifted past
// 64 are discarded, which is how negative 64-bit values written with
// ten digits come back intact.
func DecodeRawNumber(buf *Buffer) (uint64, error) {
	start := buf.position
	var value uint64
	for digits := 0; digits < maxRawNumberDigits; digits++ {
		c, err := buf.ReadByte()
		if err != nil {
			return 0, err
		}
		value = value<<7 | uint64(c&0x7F)
		if c&0x80 == 0 {
			return value, nil
		}
	}
	return 0, fmt.Errorf("%w: more than %d digits at offset %d",
		ErrMalformedRawNumber, maxRawNumberDigits, start)
}

// decodeLength reads a raw number used as a byte length or element
// count. Values that cannot be a length on this platform are malformed.
func decodeLength(buf *Buffer) (int, error) {
	start := buf.position
	value, err := DecodeRawNumber(buf)
	if err != nil {
		return 0, err
	}
	if value > math.MaxInt32 {
		return 0, fmt.Errorf("%w: length %d at offset %d exceeds %d",
			ErrMalformedRawNumber, value, start, math.MaxInt32)
	}
	return int(value), nil
}

// writeLength writes a byte length or element count.
func writeLength(dst Destination, n int) error {
	return WriteRawNumber(dst, Width32, int64(n))
}

func lengthOfLength(n int) int {
	return LengthOfRawNumber(Width32, int64(n))
}
