// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"fmt"
	"io"

	"github.com/pdiddy/bibmatch/internal/bibtex"
)

// MissingEntry identifies a reconciled entry that still lacks a work ID.
type MissingEntry struct {
	File  string
	Key   string
	Title string
}

// ListMissing scans the reconciled bibliographies under path and returns
// the entries without an identifier, in file then entry order.
func ListMissing(path string) ([]MissingEntry, error) {
	files, err := bibtex.FindFiles(path, bibtex.ModeProcessed)
	if err != nil {
		return nil, err
	}

	var missing []MissingEntry
	for _, file := range files {
		db, err := bibtex.Load(file)
		if err != nil {
			return nil, err
		}
		for _, entry := range db.Entries {
			if id, ok := entry.Get(IDField); ok && id != "" {
				continue
			}
			title, _ := entry.Get("title")
			missing = append(missing, MissingEntry{File: file, Key: entry.Key, Title: title})
		}
	}
	return missing, nil
}

// PrintMissing writes one line per missing entry.
func PrintMissing(w io.Writer, missing []MissingEntry) {
	for _, m := range missing {
		fmt.Fprintf(w, "%s: %s (%s)\n", m.File, m.Key, m.Title)
	}
	fmt.Fprintf(w, "%d entries without an OpenAlex ID\n", len(missing))
}
