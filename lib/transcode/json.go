// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transcode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/netip"
	"strconv"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/lequynhnhu/core/lib/tagcodec"
)

// TimeFormat is the JSON rendering of timestamps: RFC 3339 in UTC with
// exactly three fractional digits, matching the wire precision.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ToJSON renders a decoded value as JSON. Maps keep their insertion
// order. Unless compact is set the output is indented with two spaces.
// NaN and infinite floats have no JSON form and are errors.
func ToJSON(value any, compact bool) ([]byte, error) {
	var out bytes.Buffer
	if err := appendJSON(&out, value); err != nil {
		return nil, err
	}
	if compact {
		return out.Bytes(), nil
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, out.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent JSON: %w", err)
	}
	return indented.Bytes(), nil
}

func appendJSON(out *bytes.Buffer, value any) error {
	switch v := value.(type) {
	case nil:
		out.WriteString("null")
	case bool:
		out.WriteString(strconv.FormatBool(v))
	case string:
		return appendJSONString(out, v)
	case int16:
		out.WriteString(strconv.FormatInt(int64(v), 10))
	case int32:
		out.WriteString(strconv.FormatInt(int64(v), 10))
	case int64:
		out.WriteString(strconv.FormatInt(v, 10))
	case int:
		out.WriteString(strconv.Itoa(v))
	case float32:
		return appendJSONFloat(out, float64(v), 32)
	case float64:
		return appendJSONFloat(out, v, 64)
	case time.Time:
		return appendJSONString(out, v.UTC().Format(TimeFormat))
	case netip.Addr:
		return appendJSONString(out, v.String())
	case []byte:
		return appendJSONString(out, base64.StdEncoding.EncodeToString(v))
	case *tagcodec.Map:
		out.WriteByte('{')
		first := true
		for key, element := range v.All() {
			if !first {
				out.WriteByte(',')
			}
			first = false
			if err := appendJSONString(out, key); err != nil {
				return err
			}
			out.WriteByte(':')
			if err := appendJSON(out, element); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
		}
		out.WriteByte('}')
	case []any:
		out.WriteByte('[')
		for index, element := range v {
			if index > 0 {
				out.WriteByte(',')
			}
			if err := appendJSON(out, element); err != nil {
				return fmt.Errorf("index %d: %w", index, err)
			}
		}
		out.WriteByte(']')
	default:
		normalized, err := Normalize(value)
		if err != nil {
			return err
		}
		return appendJSON(out, normalized)
	}
	return nil
}

func appendJSONString(out *bytes.Buffer, text string) error {
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(text); err != nil {
		return fmt.Errorf("encode JSON string: %w", err)
	}
	// Encode terminates every value with a newline.
	out.Truncate(out.Len() - 1)
	return nil
}

func appendJSONFloat(out *bytes.Buffer, value float64, bitSize int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("transcode: %v has no JSON representation", value)
	}
	out.WriteString(strconv.FormatFloat(value, 'g', -1, bitSize))
	return nil
}

// FromJSON parses JSON or JSONC (comments and trailing commas) into
// the tagcodec value model. Objects become *tagcodec.Map in source
// order, integral numbers that fit become int64 and every other
// number becomes float64. The input must hold exactly one value.
func FromJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	value, err := decodeJSONValue(decoder)
	if err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse JSON: unexpected data after the top-level value")
	}
	return value, nil
}

func decodeJSONValue(decoder *json.Decoder) (any, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := tagcodec.NewMap(0)
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyToken.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyToken)
				}
				element, err := decodeJSONValue(decoder)
				if err != nil {
					return nil, err
				}
				m.Set(key, element)
			}
			if _, err := decoder.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			elements := []any{}
			for decoder.More() {
				element, err := decodeJSONValue(decoder)
				if err != nil {
					return nil, err
				}
				elements = append(elements, element)
			}
			if _, err := decoder.Token(); err != nil {
				return nil, err
			}
			return elements, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case json.Number:
		if integer, err := t.Int64(); err == nil {
			return integer, nil
		}
		float, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", t, err)
		}
		return float, nil
	default:
		// string, bool or nil
		return t, nil
	}
}
