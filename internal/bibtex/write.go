// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Write renders the database in source order, one blank line between
// entries, fields indented two spaces and brace-delimited.
func Write(w io.Writer, db *Database) error {
	for i, entry := range db.Entries {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeEntry(w, entry); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the database to path, truncating any existing file.
func Save(path string, db *Database) error {
	var b strings.Builder
	if err := Write(&b, db); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeEntry(w io.Writer, entry *Entry) error {
	if _, err := fmt.Fprintf(w, "@%s{%s,\n", entry.Type, entry.Key); err != nil {
		return err
	}
	for i, f := range entry.Fields {
		sep := ",\n"
		if i == len(entry.Fields)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "  %s = {%s}%s", f.Name, f.Value, sep); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}
