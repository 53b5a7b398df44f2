// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagcodec

import (
	"maps"
	"slices"
)

// Containers are always encoded count-prefixed: the tag, the number
// of entries as a raw number, then each entry. Map entries are a
// string key followed by the value; string values and elements skip
// the generic dispatch and go straight through the string cache.

func writeContainerHeader(dst Destination, tag Tag, count int) error {
	if err := dst.WriteByte(byte(tag)); err != nil {
		return err
	}
	return writeLength(dst, count)
}

func (s *encodeState) writeMap(dst Destination, m *Map) error {
	if err := s.depth.enter(); err != nil {
		return err
	}
	defer s.depth.leave()

	if err := writeContainerHeader(dst, TagMap, m.Len()); err != nil {
		return err
	}
	for key, value := range m.All() {
		if err := s.writeEntry(dst, key, value); err != nil {
			return err
		}
	}
	return nil
}

// writeGoMap encodes a built-in map in sorted key order. Go map
// iteration order changes between loops, and both the measuring and
// the encoding walk must see entries in the same order.
func (s *encodeState) writeGoMap(dst Destination, m map[string]any) error {
	if err := s.depth.enter(); err != nil {
		return err
	}
	defer s.depth.leave()

	if err := writeContainerHeader(dst, TagMap, len(m)); err != nil {
		return err
	}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if err := s.writeEntry(dst, key, m[key]); err != nil {
			return err
		}
	}
	return nil
}

func (s *encodeState) writeEntries(dst Destination, entries []Entry) error {
	if err := s.depth.enter(); err != nil {
		return err
	}
	defer s.depth.leave()

	if err := writeContainerHeader(dst, TagMap, len(entries)); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := s.writeEntry(dst, entry.Key, entry.Value); err != nil {
			return err
		}
	}
	return nil
}

func (s *encodeState) writeEntry(dst Destination, key string, value any) error {
	if err := s.writeString(dst, key); err != nil {
		return err
	}
	return s.writeElement(dst, value)
}

func (s *encodeState) writeElement(dst Destination, value any) error {
	if text, ok := value.(string); ok {
		return s.writeString(dst, text)
	}
	return s.encode(dst, value)
}

func (s *encodeState) writeArray(dst Destination, elements []any) error {
	if err := s.depth.enter(); err != nil {
		return err
	}
	defer s.depth.leave()

	if err := writeContainerHeader(dst, TagArray, len(elements)); err != nil {
		return err
	}
	for _, element := range elements {
		if err := s.writeElement(dst, element); err != nil {
			return err
		}
	}
	return nil
}

// writeSlice encodes a slice of one scalar kind as an array whose
// elements each carry that kind's tag.
func writeSlice[T any](s *encodeState, dst Destination, elements []T, write func(Destination, T) error) error {
	if err := s.depth.enter(); err != nil {
		return err
	}
	defer s.depth.leave()

	if err := writeContainerHeader(dst, TagArray, len(elements)); err != nil {
		return err
	}
	for _, element := range elements {
		if err := write(dst, element); err != nil {
			return err
		}
	}
	return nil
}

// Decoding accepts both framings. The header is read once; after
// that the framings differ only in when the element loop stops:
// count-prefixed containers stop after count elements, legacy ones
// once the declared number of payload bytes has been consumed.

type containerHeader struct {
	tag    Tag
	offset int
	// size is the element count for count-prefixed containers and the
	// payload byte size for legacy ones.
	size   int
	legacy bool
}

func readContainerHeader(buf *Buffer, current, legacy Tag) (containerHeader, error) {
	offset := buf.position
	tag, err := expectTag(buf, current, legacy)
	if err != nil {
		return containerHeader{}, err
	}
	size, err := decodeLength(buf)
	if err != nil {
		return containerHeader{}, err
	}
	header := containerHeader{tag: tag, offset: offset, size: size, legacy: tag == legacy}
	if header.legacy && size > buf.Remaining() {
		return containerHeader{}, buf.underflow(size)
	}
	return header, nil
}

// capacityHint bounds preallocation by what the buffer could actually
// hold, so a corrupt count cannot force a huge allocation.
func (h containerHeader) capacityHint(buf *Buffer, minimumElementSize int) int {
	if h.legacy {
		return 0
	}
	return min(h.size, buf.Remaining()/minimumElementSize)
}

// forEachElement calls element once per element of the container
// described by header.
func forEachElement(buf *Buffer, header containerHeader, element func() error) error {
	if !header.legacy {
		for range header.size {
			if err := element(); err != nil {
				return err
			}
		}
		return nil
	}

	start := buf.position
	for buf.position-start < header.size {
		if err := element(); err != nil {
			return err
		}
	}
	if consumed := buf.position - start; consumed != header.size {
		return &FramingError{Tag: header.tag, Offset: header.offset, Declared: header.size, Consumed: consumed}
	}
	return nil
}

func (d *decodeState) decodeMap(buf *Buffer) (*Map, error) {
	header, err := readContainerHeader(buf, TagMap, TagLegacyMap)
	if err != nil {
		return nil, err
	}
	if err := d.depth.enter(); err != nil {
		return nil, err
	}
	defer d.depth.leave()

	// Smallest entry: an empty key (2 bytes) and a null (1 byte).
	m := NewMap(header.capacityHint(buf, 3))
	err = forEachElement(buf, header, func() error {
		key, err := DecodeString(buf)
		if err != nil {
			return err
		}
		value, err := d.decode(buf)
		if err != nil {
			return err
		}
		m.Set(key, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (d *decodeState) decodeArray(buf *Buffer) ([]any, error) {
	header, err := readContainerHeader(buf, TagArray, TagLegacyArray)
	if err != nil {
		return nil, err
	}
	if err := d.depth.enter(); err != nil {
		return nil, err
	}
	defer d.depth.leave()

	elements := make([]any, 0, header.capacityHint(buf, 1))
	err = forEachElement(buf, header, func() error {
		element, err := d.decode(buf)
		if err != nil {
			return err
		}
		elements = append(elements, element)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return elements, nil
}
