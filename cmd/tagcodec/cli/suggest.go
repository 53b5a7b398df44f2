// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"iter"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestDistance is the largest edit distance still worth a "did
// you mean" hint. Three edits cover transpositions plus a dropped or
// doubled character.
const maxSuggestDistance = 3

// suggestCommand returns the subcommand name closest to unknown, or ""
// when none is within maxSuggestDistance.
func suggestCommand(unknown string, commands []*Command) string {
	names := func(yield func(string) bool) {
		for _, command := range commands {
			if !yield(command.Name) {
				return
			}
		}
	}
	return closest(unknown, names)
}

// suggestFlag finds the first undefined long flag in args and returns
// the closest defined flag as "--name", or "" when nothing is close.
// Positional arguments are ignored and "--" ends the search.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	index := slices.IndexFunc(args, func(arg string) bool {
		return arg == "--" || (strings.HasPrefix(arg, "--") && flagSet.Lookup(longFlagName(arg)) == nil)
	})
	if index < 0 || args[index] == "--" {
		return ""
	}

	names := func(yield func(string) bool) {
		more := true
		flagSet.VisitAll(func(f *pflag.Flag) {
			more = more && yield(f.Name)
		})
	}
	if best := closest(longFlagName(args[index]), names); best != "" {
		return "--" + best
	}
	return ""
}

// longFlagName strips the dashes and any "=value" from a long flag.
func longFlagName(arg string) string {
	name, _, _ := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
	return name
}

// closest returns the candidate with the smallest edit distance to
// name, the earliest one on ties, or "" when every candidate is further
// than maxSuggestDistance.
func closest(name string, candidates iter.Seq[string]) string {
	best, bestDistance := "", maxSuggestDistance+1
	for candidate := range candidates {
		if distance := levenshtein(name, candidate); distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}
	return best
}

// levenshtein returns the number of single-byte insertions, deletions
// and substitutions that turn a into b.
func levenshtein(a, b string) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	if a == "" {
		return len(b)
	}

	// Two rows of the distance matrix, swapped after each row of b.
	previous := make([]int, len(a)+1)
	current := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}
	for j := range len(b) {
		current[0] = j + 1
		for i := range len(a) {
			substitution := previous[i]
			if a[i] != b[j] {
				substitution++
			}
			current[i+1] = min(previous[i+1]+1, current[i]+1, substitution)
		}
		previous, current = current, previous
	}
	return previous[len(a)]
}
