// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// Parse reads BibTeX from r. @comment, @preamble and @string blocks are
// skipped; everything else becomes an Entry with field order preserved.
func Parse(r io.Reader) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	p := &parser{src: []rune(string(data))}
	db := &Database{}
	for {
		entry, err := p.next()
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return db, nil
		}
		db.Entries = append(db.Entries, entry)
	}
}

// Load parses the BibTeX file at path.
func Load(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	db, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return db, nil
}

type parser struct {
	src []rune
	pos int
}

// next returns the next entry, or nil at end of input.
func (p *parser) next() (*Entry, error) {
	for {
		if !p.seek('@') {
			return nil, nil
		}
		p.pos++ // consume '@'

		entryType := strings.ToLower(p.readIdentifier())
		if entryType == "" {
			continue
		}

		switch entryType {
		case "comment", "preamble", "string":
			if err := p.skipBlock(); err != nil {
				return nil, err
			}
			continue
		}

		return p.readEntry(entryType)
	}
}

func (p *parser) readEntry(entryType string) (*Entry, error) {
	p.skipSpace()
	if !p.consume('{') {
		return nil, fmt.Errorf("offset %d: expected '{' after @%s", p.pos, entryType)
	}

	key := strings.TrimSpace(p.readUntil(",}"))
	entry := &Entry{Type: entryType, Key: key}
	if p.consume('}') {
		return entry, nil
	}
	p.consume(',')

	for {
		p.skipSpace()
		for p.consume(',') {
			p.skipSpace()
		}
		if p.consume('}') {
			return entry, nil
		}
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("unterminated entry %q", key)
		}

		name := strings.ToLower(strings.TrimSpace(p.readUntil("=")))
		if !p.consume('=') {
			return nil, fmt.Errorf("entry %q: field %q has no value", key, name)
		}

		value, err := p.readValue()
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		entry.Fields = append(entry.Fields, Field{Name: name, Value: value})
	}
}

// readValue parses a braced, quoted, or bare field value. Concatenation
// with "#" is flattened by joining the parts.
func (p *parser) readValue() (string, error) {
	var parts []string
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return "", fmt.Errorf("unterminated field value")
		}

		switch p.src[p.pos] {
		case '{':
			v, err := p.readBraced()
			if err != nil {
				return "", err
			}
			parts = append(parts, v)
		case '"':
			v, err := p.readQuoted()
			if err != nil {
				return "", err
			}
			parts = append(parts, v)
		default:
			parts = append(parts, strings.TrimSpace(p.readUntil(",}#")))
		}

		p.skipSpace()
		if !p.consume('#') {
			return strings.Join(parts, ""), nil
		}
	}
}

// readBraced consumes a balanced {...} group and returns its contents.
func (p *parser) readBraced() (string, error) {
	start := p.pos + 1
	depth := 0
	for ; p.pos < len(p.src); p.pos++ {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				v := string(p.src[start:p.pos])
				p.pos++
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced braces")
}

// readQuoted consumes a "..." value; braces protect embedded quotes.
func (p *parser) readQuoted() (string, error) {
	p.pos++ // opening quote
	start := p.pos
	depth := 0
	for ; p.pos < len(p.src); p.pos++ {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				v := string(p.src[start:p.pos])
				p.pos++
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("unterminated quoted value")
}

// skipBlock consumes a balanced {...} or (...) block after @comment and
// friends, or the rest of the line when no block follows.
func (p *parser) skipBlock() error {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil
	}

	open := p.src[p.pos]
	var close rune
	switch open {
	case '{':
		close = '}'
	case '(':
		close = ')'
	default:
		p.readUntil("\n")
		return nil
	}

	depth := 0
	for ; p.pos < len(p.src); p.pos++ {
		switch p.src[p.pos] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		}
	}
	return fmt.Errorf("unterminated @-block")
}

func (p *parser) seek(r rune) bool {
	for p.pos < len(p.src) {
		if p.src[p.pos] == r {
			return true
		}
		p.pos++
	}
	return false
}

func (p *parser) consume(r rune) bool {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == r {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) readIdentifier() string {
	start := p.pos
	for p.pos < len(p.src) && (unicode.IsLetter(p.src[p.pos]) || unicode.IsDigit(p.src[p.pos])) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// readUntil consumes runes up to (not including) the first rune in stops.
func (p *parser) readUntil(stops string) string {
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune(stops, p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}
