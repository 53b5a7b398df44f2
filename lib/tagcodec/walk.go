// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

// Node describes one Tagged Value visited by Walk.
type Node struct {
	Tag    Tag
	Offset int
	Length int

	// Depth is 0 for the value Walk starts at and one more for each
	// enclosing container.
	Depth int

	// Count is the declared child count of a TagMap or TagArray value.
	// Legacy containers declare a byte size instead, so for them (and
	// for every scalar) Count is zero.
	Count int

	// Key is the map key the value is stored under, when Keyed is set.
	Key   string
	Keyed bool
}

// Walk visits the Tagged Value at the cursor and every value nested in
// it, parents before children, in wire order. Sizes come from probing,
// so scalar payloads are never decoded; only map keys are read.
// Extension values are visited as leaves. The cursor of buf does not
// move. Returning an error from fn stops the walk with that error.
func Walk(buf *Buffer, ext Extension, fn func(Node) error) error {
	w := walker{probe: probeState{extension: ext}, visit: fn}
	return w.walk(buf.Duplicate(), Node{})
}

type walker struct {
	probe probeState
	visit func(Node) error
}

// walk visits the value at the cursor and leaves the cursor after it.
func (w *walker) walk(buf *Buffer, node Node) error {
	start := buf.position
	length, err := w.probe.length(buf.Duplicate())
	if err != nil {
		return err
	}
	node.Tag = Tag(buf.data[start])
	node.Offset = start
	node.Length = length

	var header containerHeader
	switch node.Tag {
	case TagMap, TagLegacyMap:
		header, err = readContainerHeader(buf, TagMap, TagLegacyMap)
	case TagArray, TagLegacyArray:
		header, err = readContainerHeader(buf, TagArray, TagLegacyArray)
	default:
		if err := w.visit(node); err != nil {
			return err
		}
		return buf.skip(length)
	}
	if err != nil {
		return err
	}
	if !header.legacy {
		node.Count = header.size
	}
	if err := w.visit(node); err != nil {
		return err
	}

	keyed := node.Tag == TagMap || node.Tag == TagLegacyMap
	return forEachElement(buf, header, func() error {
		child := Node{Depth: node.Depth + 1}
		if keyed {
			key, err := DecodeString(buf)
			if err != nil {
				return err
			}
			child.Key, child.Keyed = key, true
		}
		return w.walk(buf, child)
	})
}
