// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex reads and writes BibTeX bibliography files. The parser
// preserves entry and field order so a rewritten file diffs cleanly against
// its source; the engine only requires field-level access to title, author
// and identifier, so no schema is enforced.
package bibtex

import "strings"

// Field is a single name/value pair within an entry.
type Field struct {
	Name  string
	Value string
}

// Entry is one BibTeX entry. Fields keep file order; names are stored
// lowercased since BibTeX field names are case-insensitive.
type Entry struct {
	// Type is the entry type without the leading "@" (e.g. "article").
	Type string

	// Key is the citation key.
	Key string

	Fields []Field
}

// Get returns the value of the named field and whether it is present.
func (e *Entry) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Has reports whether the named field is present.
func (e *Entry) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Set replaces the named field's value, appending the field when absent.
func (e *Entry) Set(name, value string) {
	name = strings.ToLower(name)
	for i, f := range e.Fields {
		if f.Name == name {
			e.Fields[i].Value = value
			return
		}
	}
	e.Fields = append(e.Fields, Field{Name: name, Value: value})
}

// Database is the ordered collection of entries from one file.
type Database struct {
	Entries []*Entry
}
