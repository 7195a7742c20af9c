// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ProcessedSuffix marks bibliography files that have already been through
// reconciliation.
const ProcessedSuffix = "-oa.bib"

// Mode selects which bibliography files a discovery pass is after.
type Mode int

const (
	// ModeOriginal finds ".bib" files that are not reconciliation output.
	ModeOriginal Mode = iota
	// ModeProcessed finds "-oa.bib" reconciliation output.
	ModeProcessed
)

// ProcessedPath returns the output path for a source bibliography:
// "refs.bib" becomes "refs-oa.bib".
func ProcessedPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ProcessedSuffix
}

func matchesMode(name string, mode Mode) bool {
	switch mode {
	case ModeProcessed:
		return strings.HasSuffix(name, ProcessedSuffix)
	default:
		return strings.HasSuffix(name, ".bib") && !strings.HasSuffix(name, ProcessedSuffix)
	}
}

// FindFiles returns bibliography files under path, which may be a single
// file or a directory walked recursively. Directories named "books" are
// skipped.
func FindFiles(path string, mode Mode) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if matchesMode(info.Name(), mode) {
			return []string{path}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "books" {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesMode(d.Name(), mode) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", path, err)
	}
	return files, nil
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// fileYear extracts a four-digit year from a filename, if present.
func fileYear(path string) (int, bool) {
	m := yearPattern.FindString(filepath.Base(path))
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return year, true
}

// SortByYear orders files ascending by the year embedded in their
// filenames; files without a year follow in their original order.
func SortByYear(files []string) []string {
	type dated struct {
		year int
		path string
	}

	var withYear []dated
	var undated []string
	for _, f := range files {
		if y, ok := fileYear(f); ok {
			withYear = append(withYear, dated{year: y, path: f})
		} else {
			undated = append(undated, f)
		}
	}

	sort.SliceStable(withYear, func(i, j int) bool {
		return withYear[i].year < withYear[j].year
	})

	sorted := make([]string, 0, len(files))
	for _, d := range withYear {
		sorted = append(sorted, d.path)
	}
	return append(sorted, undated...)
}
