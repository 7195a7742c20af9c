// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import "strings"

// Work is the subset of an OpenAlex work record this tool consumes. Raw
// responses are preserved separately where the full JSON must be stored.
type Work struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	DOI             string       `json:"doi"`
	PublicationYear int          `json:"publication_year"`
	Authorships     []Authorship `json:"authorships"`
	BestOALocation  *Location    `json:"best_oa_location"`
}

// Authorship links a work to one author.
type Authorship struct {
	Author Author `json:"author"`
}

// Author is the author object inside an authorship.
type Author struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Location describes where a copy of the work is hosted.
type Location struct {
	PDFURL string `json:"pdf_url"`
}

// AuthorNames returns the author display names in catalog order, skipping
// authorships without one.
func (w *Work) AuthorNames() []string {
	var names []string
	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			names = append(names, a.Author.DisplayName)
		}
	}
	return names
}

// ShortID strips the "https://openalex.org/" prefix from a work identifier,
// leaving the bare "W..." form that gets written into bibliography entries.
func ShortID(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// FormatAuthorships renders authorships as a BibTeX author field:
// "Last, First Middle and Last, First". Single-token names pass through.
func FormatAuthorships(authorships []Authorship) string {
	var authors []string
	for _, a := range authorships {
		name := strings.TrimSpace(a.Author.DisplayName)
		if name == "" {
			continue
		}
		parts := strings.Fields(name)
		if len(parts) >= 2 {
			last := parts[len(parts)-1]
			first := strings.Join(parts[:len(parts)-1], " ")
			authors = append(authors, last+", "+first)
		} else {
			authors = append(authors, name)
		}
	}
	return strings.Join(authors, " and ")
}
