// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import (
	"bytes"
	"iter"
	"math"
	"reflect"
	"slices"
	"time"
)

// Map is a string-keyed map that remembers insertion order. Decoding
// a map value produces a *Map whose iteration order is the wire order.
//
// Setting an existing key replaces its value and keeps the key's
// original position, which gives decoding its last-write-wins policy
// for duplicate keys. The zero value is an empty map ready to use.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty map with room for capacity entries.
func NewMap(capacity int) *Map {
	return &Map{
		keys:   make([]string, 0, capacity),
		values: make(map[string]any, capacity),
	}
}

// Set stores value under key.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	value, ok := m.values[key]
	return value, ok
}

// Delete removes key. Deleting a missing key is a no-op.
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(candidate string) bool { return candidate == key })
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}
		for _, key := range m.keys {
			if !yield(key, m.values[key]) {
				return
			}
		}
	}
}

// Equal reports whether m and other hold the same keys with equal
// values. Order is ignored: two maps decoded from differently framed
// or differently ordered input compare equal when their entries do.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for key, value := range m.All() {
		otherValue, ok := other.Get(key)
		if !ok || !ValuesEqual(value, otherValue) {
			return false
		}
	}
	return true
}

// Entry is one key/value pair of a map-like value. An []Entry encodes
// as a map without deduplicating keys, so it can express input that a
// Map cannot, such as the same key written twice.
type Entry struct {
	Key   string
	Value any
}

// ValuesEqual compares two values of the decoded value model. Floats
// compare by bit pattern, so a NaN equals the same NaN; times compare
// as instants.
func ValuesEqual(a, b any) bool {
	switch x := a.(type) {
	case *Map:
		y, ok := b.(*Map)
		return ok && x.Equal(y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !ValuesEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case float32:
		y, ok := b.(float32)
		return ok && math.Float32bits(x) == math.Float32bits(y)
	case float64:
		y, ok := b.(float64)
		return ok && math.Float64bits(x) == math.Float64bits(y)
	default:
		return reflect.DeepEqual(a, b)
	}
}
