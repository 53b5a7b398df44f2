// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"testing"

	"github.com/lequynhnhu/core/lib/tagcodec"
)

// marshal encodes each value and concatenates the encodings.
func marshal(t *testing.T, values ...any) []byte {
	t.Helper()
	var out []byte
	for _, value := range values {
		encoded, err := tagcodec.Marshal(value, nil)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", value, err)
		}
		out = append(out, encoded...)
	}
	return out
}

// sampleMap is {"id": int32(7), "tags": ["a", null]}, 20 bytes encoded.
func sampleMap() *tagcodec.Map {
	m := tagcodec.NewMap(2)
	m.Set("id", int32(7))
	m.Set("tags", []any{"a", nil})
	return m
}
