// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Tagcodec is the command-line tool for Tagged Values. It converts
// between Tagged Values and JSON, CBOR, or MessagePack (encode, decode),
// shows the structure of encoded data (dump), frames concatenations
// (scan), and seals envelopes with age (seal, open, keygen).
package main
