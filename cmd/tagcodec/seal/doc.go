// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package seal implements the tagcodec commands that encrypt envelopes
// with age: seal, open and keygen.
//
// Sealing is layered over envelopes rather than Tagged Values: the
// plaintext inside an age file is always an envelope, so "open" can
// verify the digest before handing the payload on.
package seal
