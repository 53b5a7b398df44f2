// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transcode

import (
	"fmt"
	"net/netip"

	"github.com/fxamacker/cbor/v2"

	"github.com/lequynhnhu/core/lib/tagcodec"
)

// cborEncMode uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same value always produces the same bytes. Timestamps are written as
// tag 1 epoch values: integers when they fall on a whole second,
// floats otherwise.
var cborEncMode cbor.EncMode

// cborDecMode keeps the default map[any]any for maps so CBOR with
// integer keys decodes; Normalize converts the keys afterwards.
var cborDecMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeUnixDynamic
	encOptions.TimeTag = cbor.EncTagRequired
	// Other TextMarshaler values are written as text strings.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	cborEncMode, err = encOptions.EncMode()
	if err != nil {
		panic("transcode: CBOR encoder initialization failed: " + err.Error())
	}

	cborDecMode, err = cbor.DecOptions{
		MaxNestedLevels: tagcodec.MaxDepth,
	}.DecMode()
	if err != nil {
		panic("transcode: CBOR decoder initialization failed: " + err.Error())
	}
}

// ToCBOR encodes a value of the tagcodec model as CBOR. Map keys are
// sorted by the deterministic encoding, so insertion order is lost.
func ToCBOR(value any) ([]byte, error) {
	plain, err := toPlain(value)
	if err != nil {
		return nil, err
	}
	data, err := cborEncMode.Marshal(plain)
	if err != nil {
		return nil, fmt.Errorf("encode CBOR: %w", err)
	}
	return data, nil
}

// FromCBOR decodes one CBOR data item into the tagcodec value model.
func FromCBOR(data []byte) (any, error) {
	var value any
	if err := cborDecMode.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode CBOR: %w", err)
	}
	return Normalize(value)
}

// DiagnoseCBOR returns the RFC 8949 §8 diagnostic notation of data.
func DiagnoseCBOR(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// toPlain converts the tagcodec-specific kinds into types the foreign
// encoders understand natively: *Map becomes map[string]any and
// netip.Addr its text form.
func toPlain(value any) (any, error) {
	switch v := value.(type) {
	case *tagcodec.Map:
		if v == nil {
			return nil, nil
		}
		result := make(map[string]any, v.Len())
		for key, element := range v.All() {
			plain, err := toPlain(element)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			result[key] = plain
		}
		return result, nil
	case []any:
		result := make([]any, len(v))
		for index, element := range v {
			plain, err := toPlain(element)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", index, err)
			}
			result[index] = plain
		}
		return result, nil
	case netip.Addr:
		return v.String(), nil
	default:
		normalized, err := Normalize(value)
		if err != nil {
			return nil, err
		}
		if _, isMap := normalized.(*tagcodec.Map); isMap {
			return toPlain(normalized)
		}
		return normalized, nil
	}
}
