// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition (counted as 2 edits)
		{"kitten", "sitting", 3},
		{"decode", "decdoe", 2},
		{"keygen", "keygn", 1},
	}

	for _, test := range tests {
		t.Run(test.a+"->"+test.b, func(t *testing.T) {
			got := levenshtein(test.a, test.b)
			if got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "encode"},
		{Name: "decode"},
		{Name: "dump"},
		{Name: "scan"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"decod", "decode"},
		{"enocde", "encode"},
		{"dmp", "dump"},
		{"scna", "scan"},
		{"completely-different", ""},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			if got := suggestCommand(test.input, commands); got != test.want {
				t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.Bool("compact", false, "")
	flagSet.String("compression", "", "")
	flagSet.Bool("hex", false, "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--compcat"}, "--compact"},
		{[]string{"--hex", "--compresion=zstd"}, "--compression"},
		{[]string{"--unrelated-flag-name"}, ""},
		{[]string{"file.tv"}, ""},
	}

	for _, test := range tests {
		if got := suggestFlag(test.args, flagSet); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
