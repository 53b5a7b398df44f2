// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInput_Stdin(t *testing.T) {
	data, remaining, err := ReadInput([]string{"not-a-file"}, strings.NewReader("payload"), false, 0)
	if err != nil {
		t.Fatalf("ReadInput: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q, want %q", data, "payload")
	}
	if len(remaining) != 1 || remaining[0] != "not-a-file" {
		t.Errorf("remaining = %v, want [not-a-file]", remaining)
	}
}

func TestReadInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "value.tv")
	if err := os.WriteFile(path, []byte{0x01, 0x01}, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, remaining, err := ReadInput([]string{path}, strings.NewReader("ignored"), false, 0)
	if err != nil {
		t.Fatalf("ReadInput: %v", err)
	}
	if !bytes.Equal(data, []byte{0x01, 0x01}) {
		t.Errorf("data = %x, want 0101", data)
	}
	if len(remaining) != 0 {
		t.Errorf("remaining = %v, want none", remaining)
	}
}

func TestReadInput_Hex(t *testing.T) {
	data, _, err := ReadInput(nil, strings.NewReader("05 02\n68 69\n"), true, 0)
	if err != nil {
		t.Fatalf("ReadInput: %v", err)
	}
	if !bytes.Equal(data, []byte{0x05, 0x02, 'h', 'i'}) {
		t.Errorf("data = %x, want 05026869", data)
	}

	for _, input := range []string{"  \n", "0g", "abc"} {
		if _, _, err := ReadInput(nil, strings.NewReader(input), true, 0); Category(err) != CategoryValidation {
			t.Errorf("ReadInput(hex %q) error = %v, want validation error", input, err)
		}
	}
}

func TestReadInput_Limit(t *testing.T) {
	if _, _, err := ReadInput(nil, strings.NewReader("12345"), false, 5); err != nil {
		t.Errorf("input at the limit rejected: %v", err)
	}
	_, _, err := ReadInput(nil, strings.NewReader("123456"), false, 5)
	if Category(err) != CategoryValidation || !strings.Contains(err.Error(), "input limit") {
		t.Errorf("ReadInput over the limit = %v, want validation error", err)
	}
}

func TestWriteOutput(t *testing.T) {
	var output bytes.Buffer
	if err := WriteOutput(&output, []byte{0xAB, 0x01}, true); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if output.String() != "ab01\n" {
		t.Errorf("hex output = %q, want %q", output.String(), "ab01\n")
	}

	output.Reset()
	if err := WriteOutput(&output, []byte{0xAB, 0x01}, false); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if !bytes.Equal(output.Bytes(), []byte{0xAB, 0x01}) {
		t.Errorf("raw output = %x, want ab01", output.Bytes())
	}
}
