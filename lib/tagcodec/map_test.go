// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import (
	"math"
	"slices"
	"testing"
	"time"
)

func TestMapSetKeepsPosition(t *testing.T) {
	var m Map
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)
	if got := m.Keys(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Keys = %v", got)
	}
	if value, _ := m.Get("a"); value != 3 {
		t.Errorf("a = %v, want 3", value)
	}

	m.Delete("a")
	m.Delete("missing")
	if got := m.Keys(); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Keys after Delete = %v", got)
	}
	if _, ok := m.Get("a"); ok {
		t.Error("deleted key still present")
	}
}

func TestNilMap(t *testing.T) {
	var m *Map
	if m.Len() != 0 || m.Keys() != nil {
		t.Error("nil map is not empty")
	}
	if _, ok := m.Get("x"); ok {
		t.Error("nil map has a key")
	}
	for range m.All() {
		t.Error("nil map yielded an entry")
	}
	if !m.Equal(NewMap(0)) {
		t.Error("nil map is not equal to an empty map")
	}
}

func TestValuesEqual(t *testing.T) {
	left := NewMap(2)
	left.Set("x", []any{1.5, []byte{1}})
	left.Set("y", time.UnixMilli(10))
	right := NewMap(2)
	right.Set("y", time.UnixMilli(10).UTC())
	right.Set("x", []any{1.5, []byte{1}})

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"maps ignore order", left, right, true},
		{"nan equals itself", math.NaN(), math.NaN(), true},
		{"different kinds", int32(1), int64(1), false},
		{"array length", []any{1}, []any{1, 2}, false},
		{"blob contents", []byte{1}, []byte{2}, false},
		{"map against array", left, []any{}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ValuesEqual(test.a, test.b); got != test.want {
				t.Errorf("ValuesEqual = %v, want %v", got, test.want)
			}
		})
	}
}
