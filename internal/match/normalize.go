// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match decides whether a local bibliographic record and a remote
// catalog work are the same publication. It scores fuzzy textual similarity
// over titles and author lists, ranks candidates, and applies a tiered
// acceptance policy with an escalation path to manual confirmation.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeTitle canonicalizes free text for comparison: NFKD decomposition,
// then combining marks and any remaining non-ASCII runes are dropped, runs of
// whitespace collapse to a single space, and the result is trimmed and
// lowercased. The second return value is false when the input contains no
// usable text, so callers can tell "no data" apart from an empty field.
func NormalizeTitle(s string) (string, bool) {
	out := normalizeASCII(s, false)
	return out, out != ""
}

// NormalizeAuthorName canonicalizes a person name the same way as
// NormalizeTitle and additionally strips punctuation, so "Smith, J." and
// "J Smith" reduce to comparable forms.
func NormalizeAuthorName(s string) (string, bool) {
	out := normalizeASCII(s, true)
	return out, out != ""
}

func normalizeASCII(s string, stripPunct bool) string {
	decomposed := norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r > unicode.MaxASCII {
			continue
		}
		if stripPunct && r != ' ' && !isASCIIAlnum(r) && !unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}

	fields := strings.Fields(strings.ToLower(b.String()))
	return strings.Join(fields, " ")
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
