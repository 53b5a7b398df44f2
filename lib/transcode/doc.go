// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package transcode converts between the tagcodec value model and
// other data formats: JSON (and JSONC on input), CBOR, and
// MessagePack.
//
// JSON is lossy. It has no timestamp, address, blob or integer-width
// types, so timestamps become RFC 3339 strings with millisecond
// precision, addresses become their text form, blobs become base64
// strings, and every integer comes back as an int64. CBOR keeps blobs
// and timestamps but not integer or float widths. MessagePack keeps
// all three. Both carry addresses as text.
//
// Values decoded from foreign formats go through Normalize, which
// maps whatever the foreign decoder produced onto the kinds tagcodec
// encodes.
package transcode
