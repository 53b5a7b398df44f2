// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/lequynhnhu/core/lib/tagcodec"
)

// Magic starts every envelope. None of its bytes is a built-in value
// tag, so an envelope is never mistaken for a bare value.
const Magic = "TGE"

// Version is the only envelope layout this package reads and writes.
const Version = 1

// DigestSize is the length of the payload digest.
const DigestSize = 32

var (
	// ErrNotEnvelope means the data does not start with Magic.
	ErrNotEnvelope = errors.New("envelope: missing magic")

	// ErrDigestMismatch means the payload does not hash to the
	// digest stored in the header.
	ErrDigestMismatch = errors.New("envelope: payload digest mismatch")

	// ErrTooLarge means the header declares a payload larger than the
	// caller allows.
	ErrTooLarge = errors.New("envelope: payload exceeds size limit")
)

// digestKey separates envelope digests from any other BLAKE3 use of
// the same bytes. ASCII, zero-padded to 32 bytes.
var digestKey = [32]byte{
	't', 'a', 'g', 'c', 'o', 'd', 'e', 'c', '.', 'e', 'n', 'v', 'e', 'l', 'o', 'p',
	'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Digest returns the keyed BLAKE3 digest Wrap stores for payload.
func Digest(payload []byte) [DigestSize]byte {
	hasher, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		panic("envelope: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var digest [DigestSize]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// Header describes an unwrapped envelope.
type Header struct {
	Version uint8

	// Compression is the algorithm actually used for the body, which
	// may be CompressionNone even when another was requested.
	Compression Compression

	// Length is the uncompressed payload size.
	Length int

	// BodySize is the size of the stored body.
	BodySize int

	Digest [DigestSize]byte
}

// Options controls Wrap.
type Options struct {
	Compression Compression
}

// Wrap frames payload in an envelope.
func Wrap(payload []byte, options Options) ([]byte, error) {
	compression := options.Compression
	body, err := compress(payload, compression)
	if errors.Is(err, errIncompressible) {
		body, compression = payload, CompressionNone
	} else if err != nil {
		return nil, err
	}

	digest := Digest(payload)
	out := make([]byte, 0, len(Magic)+2+tagcodec.LengthOfRawNumber(tagcodec.Width64, int64(len(payload)))+DigestSize+len(body))
	out = append(out, Magic...)
	out = append(out, Version, byte(compression))
	out = tagcodec.AppendRawNumber(out, tagcodec.Width64, int64(len(payload)))
	out = append(out, digest[:]...)
	out = append(out, body...)
	return out, nil
}

// IsEnvelope reports whether data starts with the envelope magic.
func IsEnvelope(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}

// ReadHeader parses the envelope header and returns it along with the
// body that follows it.
func ReadHeader(data []byte) (Header, []byte, error) {
	if !IsEnvelope(data) {
		return Header{}, nil, ErrNotEnvelope
	}
	buf := tagcodec.WrapBuffer(data)
	buf.SetPosition(len(Magic))

	version, err := buf.ReadByte()
	if err != nil {
		return Header{}, nil, fmt.Errorf("envelope: reading version: %w", err)
	}
	if version != Version {
		return Header{}, nil, fmt.Errorf("envelope: unsupported version %d", version)
	}
	compression, err := buf.ReadByte()
	if err != nil {
		return Header{}, nil, fmt.Errorf("envelope: reading compression: %w", err)
	}
	length, err := tagcodec.DecodeRawNumber(buf)
	if err != nil {
		return Header{}, nil, fmt.Errorf("envelope: reading payload length: %w", err)
	}
	if length > 1<<31-1 {
		return Header{}, nil, fmt.Errorf("%w: declared length %d", ErrTooLarge, length)
	}
	if buf.Remaining() < DigestSize {
		return Header{}, nil, fmt.Errorf("envelope: truncated digest: %d of %d bytes", buf.Remaining(), DigestSize)
	}

	header := Header{
		Version:     version,
		Compression: Compression(compression),
		Length:      int(length),
	}
	unread := buf.Unread()
	copy(header.Digest[:], unread[:DigestSize])
	body := unread[DigestSize:]
	header.BodySize = len(body)
	return header, body, nil
}

// Unwrap verifies an envelope and returns its payload.
func Unwrap(data []byte) ([]byte, Header, error) {
	return UnwrapLimit(data, 0)
}

// UnwrapLimit is Unwrap with a cap on the declared payload size,
// checked before anything is decompressed. A limit of zero or less
// means no cap.
func UnwrapLimit(data []byte, limit int) ([]byte, Header, error) {
	header, body, err := ReadHeader(data)
	if err != nil {
		return nil, Header{}, err
	}
	if limit > 0 && header.Length > limit {
		return nil, header, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, header.Length, limit)
	}

	payload, err := decompress(body, header.Compression, header.Length)
	if err != nil {
		return nil, header, fmt.Errorf("envelope: %w", err)
	}
	digest := Digest(payload)
	if subtle.ConstantTimeCompare(digest[:], header.Digest[:]) != 1 {
		return nil, header, ErrDigestMismatch
	}
	return payload, header, nil
}
