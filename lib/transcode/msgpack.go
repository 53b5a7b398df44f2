// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transcode

import (
	"bytes"
	"fmt"
	"net/netip"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/lequynhnhu/core/lib/tagcodec"
)

// ToMsgpack encodes a value of the tagcodec model as MessagePack.
// Maps keep their insertion order and integers keep their width.
// Timestamps use the MessagePack timestamp extension.
func ToMsgpack(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := msgpack.NewEncoder(&out)
	if err := encodeMsgpack(encoder, value, 0); err != nil {
		return nil, fmt.Errorf("encode MessagePack: %w", err)
	}
	return out.Bytes(), nil
}

func encodeMsgpack(encoder *msgpack.Encoder, value any, depth int) error {
	if depth > tagcodec.MaxDepth {
		return tagcodec.ErrMaxDepth
	}
	switch v := value.(type) {
	case nil:
		return encoder.EncodeNil()
	case bool:
		return encoder.EncodeBool(v)
	case string:
		return encoder.EncodeString(v)
	case int16:
		return encoder.EncodeInt16(v)
	case int32:
		return encoder.EncodeInt32(v)
	case int64:
		return encoder.EncodeInt64(v)
	case float32:
		return encoder.EncodeFloat32(v)
	case float64:
		return encoder.EncodeFloat64(v)
	case time.Time:
		return encoder.EncodeTime(v)
	case netip.Addr:
		return encoder.EncodeString(v.String())
	case []byte:
		return encoder.EncodeBytes(v)
	case *tagcodec.Map:
		if err := encoder.EncodeMapLen(v.Len()); err != nil {
			return err
		}
		for key, element := range v.All() {
			if err := encoder.EncodeString(key); err != nil {
				return err
			}
			if err := encodeMsgpack(encoder, element, depth+1); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
		}
		return nil
	case []any:
		if err := encoder.EncodeArrayLen(len(v)); err != nil {
			return err
		}
		for index, element := range v {
			if err := encodeMsgpack(encoder, element, depth+1); err != nil {
				return fmt.Errorf("index %d: %w", index, err)
			}
		}
		return nil
	default:
		normalized, err := Normalize(value)
		if err != nil {
			return err
		}
		return encodeMsgpack(encoder, normalized, depth)
	}
}

// FromMsgpack decodes one MessagePack value into the tagcodec value
// model. Maps become *tagcodec.Map in stream order and must have
// string keys. The input must hold exactly one value.
func FromMsgpack(data []byte) (any, error) {
	reader := bytes.NewReader(data)
	decoder := msgpack.NewDecoder(reader)
	value, err := decodeMsgpack(decoder, 0)
	if err != nil {
		return nil, fmt.Errorf("decode MessagePack: %w", err)
	}
	if reader.Len() != 0 {
		return nil, fmt.Errorf("decode MessagePack: %d bytes after the top-level value", reader.Len())
	}
	return value, nil
}

func decodeMsgpack(decoder *msgpack.Decoder, depth int) (any, error) {
	if depth > tagcodec.MaxDepth {
		return nil, tagcodec.ErrMaxDepth
	}
	code, err := decoder.PeekCode()
	if err != nil {
		return nil, err
	}
	switch {
	case msgpcode.IsFixedMap(code) || code == msgpcode.Map16 || code == msgpcode.Map32:
		length, err := decoder.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		m := tagcodec.NewMap(0)
		for range length {
			key, err := decoder.DecodeString()
			if err != nil {
				return nil, fmt.Errorf("map key: %w", err)
			}
			element, err := decodeMsgpack(decoder, depth+1)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			m.Set(key, element)
		}
		return m, nil
	case msgpcode.IsFixedArray(code) || code == msgpcode.Array16 || code == msgpcode.Array32:
		length, err := decoder.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		elements := make([]any, 0, min(length, 1024))
		for index := range length {
			element, err := decodeMsgpack(decoder, depth+1)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", index, err)
			}
			elements = append(elements, element)
		}
		return elements, nil
	default:
		value, err := decoder.DecodeInterface()
		if err != nil {
			return nil, err
		}
		return Normalize(value)
	}
}
