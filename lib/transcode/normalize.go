// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transcode

import (
	"fmt"
	"maps"
	"math"
	"net/netip"
	"slices"
	"time"

	"github.com/lequynhnhu/core/lib/tagcodec"
)

// Normalize converts a value produced by a foreign decoder into the
// tagcodec value model. Narrow and unsigned integers widen to int64,
// maps become *tagcodec.Map (keys sorted; non-string keys formatted
// with fmt.Sprint), times move to UTC rounded to the millisecond, and
// containers are converted recursively.
// Unsigned values above math.MaxInt64 and kinds with no tagcodec
// counterpart are errors.
func Normalize(value any) (any, error) {
	switch v := value.(type) {
	case nil, bool, string, int16, int32, int64, float32, float64, []byte, netip.Addr:
		return v, nil
	case time.Time:
		return v.UTC().Round(time.Millisecond), nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint:
		return normalizeUnsigned(uint64(v))
	case uint64:
		return normalizeUnsigned(v)
	case *tagcodec.Map:
		result := tagcodec.NewMap(v.Len())
		for key, element := range v.All() {
			normalized, err := Normalize(element)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			result.Set(key, normalized)
		}
		return result, nil
	case map[string]any:
		result := tagcodec.NewMap(len(v))
		for _, key := range slices.Sorted(maps.Keys(v)) {
			normalized, err := Normalize(v[key])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			result.Set(key, normalized)
		}
		return result, nil
	case map[any]any:
		keyed := make(map[string]any, len(v))
		for key, element := range v {
			keyed[fmt.Sprint(key)] = element
		}
		return Normalize(keyed)
	case []any:
		result := make([]any, len(v))
		for index, element := range v {
			normalized, err := Normalize(element)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", index, err)
			}
			result[index] = normalized
		}
		return result, nil
	default:
		return nil, fmt.Errorf("transcode: no tagcodec kind for %T", value)
	}
}

func normalizeUnsigned(v uint64) (any, error) {
	if v > math.MaxInt64 {
		return nil, fmt.Errorf("transcode: unsigned integer %d does not fit in int64", v)
	}
	return int64(v), nil
}
