// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"regexp"
	"strings"
)

// authorSeparator splits a raw BibTeX author field on the literal "and"
// connective between names.
var authorSeparator = regexp.MustCompile(`\s+and\s+`)

// ParseAuthorField splits a raw author field ("Last, First and Last, First")
// into individual display names. A "Last, First" name is reordered to
// "First Last" on the first comma only; names without a comma pass through
// unchanged.
func ParseAuthorField(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}

	var names []string
	for _, raw := range authorSeparator.Split(field, -1) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		last, first, found := strings.Cut(raw, ",")
		if !found {
			names = append(names, raw)
			continue
		}

		last = strings.TrimSpace(last)
		first = strings.TrimSpace(first)
		switch {
		case last != "" && first != "":
			names = append(names, first+" "+last)
		case last != "":
			names = append(names, last)
		case first != "":
			names = append(names, first)
		}
	}
	return names
}
