// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("@misc{k,\n  title = {t}\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "conf2017.bib"))
	touch(t, filepath.Join(dir, "conf2017-oa.bib"))
	touch(t, filepath.Join(dir, "sub", "journal.bib"))
	touch(t, filepath.Join(dir, "books", "skipme.bib"))
	touch(t, filepath.Join(dir, "notes.txt"))

	originals, err := FindFiles(dir, ModeOriginal)
	if err != nil {
		t.Fatalf("FindFiles() error: %v", err)
	}
	wantOriginals := map[string]bool{
		filepath.Join(dir, "conf2017.bib"):       true,
		filepath.Join(dir, "sub", "journal.bib"): true,
	}
	if len(originals) != len(wantOriginals) {
		t.Fatalf("originals = %v", originals)
	}
	for _, f := range originals {
		if !wantOriginals[f] {
			t.Errorf("unexpected original: %s", f)
		}
	}

	processed, err := FindFiles(dir, ModeProcessed)
	if err != nil {
		t.Fatalf("FindFiles() error: %v", err)
	}
	if len(processed) != 1 || processed[0] != filepath.Join(dir, "conf2017-oa.bib") {
		t.Errorf("processed = %v", processed)
	}
}

func TestFindFilesSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	touch(t, path)

	files, err := FindFiles(path, ModeOriginal)
	if err != nil {
		t.Fatalf("FindFiles() error: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("files = %v", files)
	}

	// A source file does not satisfy a processed-mode search.
	files, err = FindFiles(path, ModeProcessed)
	if err != nil {
		t.Fatalf("FindFiles() error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %v, want none", files)
	}
}

func TestProcessedPath(t *testing.T) {
	if got := ProcessedPath("papers/conf2017.bib"); got != "papers/conf2017"+ProcessedSuffix {
		t.Errorf("ProcessedPath() = %q", got)
	}
}

func TestSortByYear(t *testing.T) {
	files := []string{
		"z/nodate.bib",
		"a/conf2019.bib",
		"b/workshop2005.bib",
		"c/also-undated.bib",
		"d/jrnl2010.bib",
	}
	got := SortByYear(files)
	want := []string{
		"b/workshop2005.bib",
		"d/jrnl2010.bib",
		"a/conf2019.bib",
		"z/nodate.bib",
		"c/also-undated.bib",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByYear() = %v, want %v", got, want)
	}
}
