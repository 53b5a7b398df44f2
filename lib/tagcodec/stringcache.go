// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

// encodedString is a string in its wire form: valid UTF-8 text and the
// length of the whole tagged field (tag, raw-number length, text).
type encodedString struct {
	text   string
	length int
}

func newEncodedString(value string) encodedString {
	text := validUTF8(value)
	return encodedString{text: text, length: 1 + lengthOfLength(len(text)) + len(text)}
}

// stringCache holds the encoded form of every string seen by one
// top-level Marshal call, so its measuring pass and its encoding pass
// prepare each distinct string once. A nil cache computes every entry
// on demand; single-pass writers use that.
//
// A cache belongs to exactly one call and is never shared.
type stringCache map[string]encodedString

func (c stringCache) get(value string) encodedString {
	if c == nil {
		return newEncodedString(value)
	}
	if entry, ok := c[value]; ok {
		return entry
	}
	entry := newEncodedString(value)
	c[value] = entry
	return entry
}
