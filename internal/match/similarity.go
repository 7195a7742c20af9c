// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ratio returns a similarity percentage in [0,100] derived from the
// Levenshtein distance between two strings. Identical strings score 100.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	d := fuzzy.LevenshteinDistance(a, b)
	if d >= longest {
		return 0
	}
	return (longest - d) * 100 / longest
}

// partialRatio slides a window the length of the shorter string across the
// longer one and returns the best window ratio. It rewards a short name
// appearing inside a longer one ("j smith" inside "j smith jr").
func partialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	shorter, longer := ra, rb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	best := 0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		r := ratio(string(shorter), string(longer[i:i+len(shorter)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// tokenSetRatio compares the word sets of two strings, insensitive to word
// order and repetition. When one token set is a subset of the other the
// score is 100, which handles subtitle and reordered-clause variants.
func tokenSetRatio(a, b string) int {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var inter, onlyA, onlyB []string
	seen := make(map[string]bool, len(tb))
	for _, t := range tb {
		seen[t] = true
	}
	for _, t := range ta {
		if seen[t] {
			inter = append(inter, t)
			delete(seen, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range tb {
		if seen[t] {
			onlyB = append(onlyB, t)
		}
	}

	base := strings.Join(inter, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := ratio(base, withA)
	if r := ratio(base, withB); r > best {
		best = r
	}
	if r := ratio(withA, withB); r > best {
		best = r
	}
	return best
}

// tokenSet splits on non-alphanumeric runes and returns the sorted set of
// unique tokens.
func tokenSet(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	uniq := make(map[string]bool, len(fields))
	tokens := fields[:0]
	for _, f := range fields {
		if !uniq[f] {
			uniq[f] = true
			tokens = append(tokens, f)
		}
	}
	sort.Strings(tokens)
	return tokens
}
