// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the algorithm applied to an envelope body.
// The values are stored in the envelope header; changing one breaks
// every envelope already written.
type Compression uint8

const (
	// CompressionNone stores the payload as is. Wrap also falls back
	// to it when the requested algorithm does not shrink the payload.
	CompressionNone Compression = 0

	// CompressionLZ4 is LZ4 block compression: fast, modest ratio.
	CompressionLZ4 Compression = 1

	// CompressionZstd is zstd at the default level: better ratio for
	// text-heavy values.
	CompressionZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name as produced by String.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, lz4 or zstd)", name)
	}
}

// errIncompressible means compression would not make the body smaller.
var errIncompressible = errors.New("data is incompressible")

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionLZ4:
		return compressLZ4(data)
	case CompressionZstd:
		return compressZstd(data)
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
}

func decompress(body []byte, c Compression, length int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(body) != length {
			return nil, fmt.Errorf("uncompressed body: size %d does not match header length %d", len(body), length)
		}
		return body, nil
	case CompressionLZ4:
		return decompressLZ4(body, length)
	case CompressionZstd:
		return decompressZstd(body, length)
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock reports 0 for input it cannot compress.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(body []byte, length int) ([]byte, error) {
	destination := make([]byte, length)
	read, err := lz4.UncompressBlock(body, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != length {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, header says %d", read, length)
	}
	return destination, nil
}

// The zstd encoder and decoder are safe for concurrent use and shared
// by every call.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("envelope: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("envelope: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

func decompressZstd(body []byte, length int) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(body, make([]byte, 0, length))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != length {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, header says %d", len(result), length)
	}
	return result, nil
}
