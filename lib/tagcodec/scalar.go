// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import (
	"encoding/binary"
	"fmt"
	"math"
	"net"
	"net/netip"
	"strings"
	"time"
	"unicode/utf8"
)

// Tagged-field lengths of the fixed-width kinds, tag byte included.
const (
	NullLength    = 1
	BoolLength    = 2
	Float32Length = 1 + 4
	Float64Length = 1 + 8
	TimeLength    = 1 + 8
	IPv4Length    = 1 + 4
	IPv6Length    = 1 + 16
)

func WriteNull(dst Destination) error {
	return dst.WriteByte(byte(TagNull))
}

func WriteBool(dst Destination, value bool) error {
	if err := dst.WriteByte(byte(TagBool)); err != nil {
		return err
	}
	var payload byte
	if value {
		payload = 1
	}
	return dst.WriteByte(payload)
}

func WriteInt16(dst Destination, value int16) error {
	if err := dst.WriteByte(byte(TagInt16)); err != nil {
		return err
	}
	return WriteRawNumber(dst, Width16, int64(Zigzag16(value)))
}

func WriteInt32(dst Destination, value int32) error {
	if err := dst.WriteByte(byte(TagInt32)); err != nil {
		return err
	}
	return WriteRawNumber(dst, Width32, int64(Zigzag32(value)))
}

func WriteInt64(dst Destination, value int64) error {
	if err := dst.WriteByte(byte(TagInt64)); err != nil {
		return err
	}
	return WriteRawNumber(dst, Width64, int64(Zigzag64(value)))
}

// WriteNumber writes value with the zigzag tag of the given width,
// truncating it to that width first.
func WriteNumber(dst Destination, width Width, value int64) error {
	switch width {
	case Width16:
		return WriteInt16(dst, int16(value))
	case Width32:
		return WriteInt32(dst, int32(value))
	case Width64:
		return WriteInt64(dst, value)
	default:
		return &UnsupportedTypeError{Kind: fmt.Sprintf("number width %d", width)}
	}
}

func LengthOfInt16(value int16) int {
	return 1 + LengthOfRawNumber(Width16, int64(Zigzag16(value)))
}

func LengthOfInt32(value int32) int {
	return 1 + LengthOfRawNumber(Width32, int64(Zigzag32(value)))
}

func LengthOfInt64(value int64) int {
	return 1 + LengthOfRawNumber(Width64, int64(Zigzag64(value)))
}

// LengthOfNumber is the length WriteNumber produces. Unknown widths
// yield -1.
func LengthOfNumber(width Width, value int64) int {
	switch width {
	case Width16:
		return LengthOfInt16(int16(value))
	case Width32:
		return LengthOfInt32(int32(value))
	case Width64:
		return LengthOfInt64(value)
	default:
		return -1
	}
}

func WriteFloat32(dst Destination, value float32) error {
	var field [Float32Length]byte
	field[0] = byte(TagFloat32)
	binary.BigEndian.PutUint32(field[1:], math.Float32bits(value))
	_, err := dst.Write(field[:])
	return err
}

func WriteFloat64(dst Destination, value float64) error {
	var field [Float64Length]byte
	field[0] = byte(TagFloat64)
	binary.BigEndian.PutUint64(field[1:], math.Float64bits(value))
	_, err := dst.Write(field[:])
	return err
}

// WriteTime writes value as signed milliseconds since the Unix epoch.
// Sub-millisecond precision and the location are not encoded.
func WriteTime(dst Destination, value time.Time) error {
	var field [TimeLength]byte
	field[0] = byte(TagTime)
	binary.BigEndian.PutUint64(field[1:], uint64(value.UnixMilli()))
	_, err := dst.Write(field[:])
	return err
}

// WriteAddr writes an IPv4 address as 4 bytes and anything else
// (including IPv4-mapped IPv6) as 16 bytes. IPv6 zones are dropped.
func WriteAddr(dst Destination, addr netip.Addr) error {
	switch {
	case addr.Is4():
		var field [IPv4Length]byte
		field[0] = byte(TagIPv4)
		ip := addr.As4()
		copy(field[1:], ip[:])
		_, err := dst.Write(field[:])
		return err
	case addr.Is6():
		var field [IPv6Length]byte
		field[0] = byte(TagIPv6)
		ip := addr.As16()
		copy(field[1:], ip[:])
		_, err := dst.Write(field[:])
		return err
	default:
		return &UnsupportedTypeError{Kind: "netip.Addr (invalid)"}
	}
}

// LengthOfAddr is the length WriteAddr produces, or -1 for an invalid
// address.
func LengthOfAddr(addr netip.Addr) int {
	switch {
	case addr.Is4():
		return IPv4Length
	case addr.Is6():
		return IPv6Length
	default:
		return -1
	}
}

// addrFromIP converts a net.IP the way the dispatcher encodes it:
// anything with a 4-byte form is IPv4.
func addrFromIP(ip net.IP) (netip.Addr, bool) {
	if ip4 := ip.To4(); ip4 != nil {
		return netip.AddrFrom4([4]byte(ip4)), true
	}
	if len(ip) == net.IPv6len {
		return netip.AddrFrom16([16]byte(ip)), true
	}
	return netip.Addr{}, false
}

// WriteString writes value as UTF-8. Invalid byte sequences are
// replaced with U+FFFD so the payload is always well-formed.
func WriteString(dst Destination, value string) error {
	return writeText(dst, validUTF8(value))
}

func LengthOfString(value string) int {
	valid := validUTF8(value)
	return 1 + lengthOfLength(len(valid)) + len(valid)
}

// writeText writes a string field whose text is already valid UTF-8.
func writeText(dst Destination, text string) error {
	if err := dst.WriteByte(byte(TagString)); err != nil {
		return err
	}
	if err := writeLength(dst, len(text)); err != nil {
		return err
	}
	_, err := dst.WriteString(text)
	return err
}

func validUTF8(value string) string {
	if utf8.ValidString(value) {
		return value
	}
	return strings.ToValidUTF8(value, string(utf8.RuneError))
}

func WriteBlob(dst Destination, value []byte) error {
	if err := dst.WriteByte(byte(TagBlob)); err != nil {
		return err
	}
	if err := writeLength(dst, len(value)); err != nil {
		return err
	}
	_, err := dst.Write(value)
	return err
}

func LengthOfBlob(value []byte) int {
	return 1 + lengthOfLength(len(value)) + len(value)
}
