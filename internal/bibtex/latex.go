// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"regexp"
	"strings"
)

// accentPattern matches LaTeX accent commands in their common spellings:
// \'e, \'{e}, {\'e}, \"o, \c{c} and so on.
var accentPattern = regexp.MustCompile("\\\\([`'\"^~=.cv])\\{?([a-zA-Z])\\}?")

// accentTable maps (accent command, base letter) to the composed rune.
// Unlisted combinations fall back to the bare letter.
var accentTable = map[string]string{
	"`a": "à", "`e": "è", "`i": "ì", "`o": "ò", "`u": "ù",
	"'a": "á", "'e": "é", "'i": "í", "'o": "ó", "'u": "ú", "'y": "ý", "'c": "ć", "'n": "ń", "'s": "ś", "'z": "ź",
	`"a`: "ä", `"e`: "ë", `"i`: "ï", `"o`: "ö", `"u`: "ü", `"y`: "ÿ",
	"^a": "â", "^e": "ê", "^i": "î", "^o": "ô", "^u": "û",
	"~a": "ã", "~n": "ñ", "~o": "õ",
	"cc": "ç", "cs": "ş", "ct": "ţ",
	"vc": "č", "vs": "š", "vz": "ž",
}

// symbolPattern matches standalone letter macros; the word boundary keeps
// \omega from being read as \o.
var symbolPattern = regexp.MustCompile(`\\(ss|ae|AE|aa|AA|oe|OE|o|O|l|L)\b`)

var symbolTable = map[string]string{
	"ss": "ß", "ae": "æ", "AE": "Æ", "aa": "å", "AA": "Å",
	"oe": "œ", "OE": "Œ", "o": "ø", "O": "Ø", "l": "ł", "L": "Ł",
}

// commandPattern matches remaining backslash commands such as \emph or
// \textit, whose braced argument survives the brace strip.
var commandPattern = regexp.MustCompile(`\\[a-zA-Z]+\s*`)

var literalReplacer = strings.NewReplacer(
	`\&`, "&",
	`\%`, "%",
	`\$`, "$",
	`\#`, "#",
	`\_`, "_",
	"~", " ",
)

// deTeX converts common LaTeX markup in a field value to plain Unicode:
// accent commands become composed characters, escaped specials become their
// literal form, other commands are dropped and braces stripped.
func deTeX(s string) string {
	if !strings.ContainsAny(s, "\\{}~") {
		return s
	}

	s = accentPattern.ReplaceAllStringFunc(s, func(m string) string {
		groups := accentPattern.FindStringSubmatch(m)
		lower := strings.ToLower(groups[2])
		if composed, ok := accentTable[groups[1]+lower]; ok {
			if groups[2] != lower {
				return strings.ToUpper(composed)
			}
			return composed
		}
		return groups[2]
	})

	s = symbolPattern.ReplaceAllStringFunc(s, func(m string) string {
		return symbolTable[m[1:]]
	})
	s = literalReplacer.Replace(s)
	s = commandPattern.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if r == '{' || r == '}' {
			return -1
		}
		return r
	}, s)
	return s
}

// CleanEntry converts LaTeX markup to plain text in every field and
// collapses embedded newlines and runs of spaces, the shape titles and
// author lists are compared in.
func CleanEntry(e *Entry) {
	for i, f := range e.Fields {
		v := deTeX(f.Value)
		e.Fields[i].Value = strings.Join(strings.Fields(v), " ")
	}
}
