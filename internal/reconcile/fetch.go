// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/bibmatch/internal/bibtex"
	"github.com/pdiddy/bibmatch/internal/openalex"
)

// WorkGetter fetches one catalog work by identifier.
type WorkGetter interface {
	GetWork(ctx context.Context, id string) (*openalex.FetchedWork, error)
}

// Fetcher downloads the full catalog records referenced by reconciled
// bibliography files and stores them as JSON documents.
type Fetcher struct {
	client WorkGetter
	force  bool
	log    io.Writer
}

// NewFetcher builds a fetcher. When force is false, works whose JSON file
// already exists are not fetched again.
func NewFetcher(client WorkGetter, force bool, log io.Writer) *Fetcher {
	if log == nil {
		log = io.Discard
	}
	return &Fetcher{client: client, force: force, log: log}
}

// FetchPath fetches every work referenced by the reconciled bibliographies
// under bibPath, writing "<id>.json" files under outDir. The directory
// layout below bibPath is mirrored under outDir so each bibliography's
// records sit together.
func (f *Fetcher) FetchPath(ctx context.Context, bibPath, outDir string) (int, error) {
	files, err := bibtex.FindFiles(bibPath, bibtex.ModeProcessed)
	if err != nil {
		return 0, err
	}

	root := bibPath
	if info, err := os.Stat(bibPath); err == nil && !info.IsDir() {
		root = filepath.Dir(bibPath)
	}

	fetched := 0
	for _, file := range files {
		rel, err := filepath.Rel(root, filepath.Dir(file))
		if err != nil {
			rel = "."
		}
		dest := filepath.Join(outDir, rel)

		db, err := bibtex.Load(file)
		if err != nil {
			fmt.Fprintf(f.log, "failed to load %s: %v\n", file, err)
			continue
		}

		n, err := f.fetchWorks(ctx, CollectIDs(db), dest)
		fetched += n
		if err != nil {
			return fetched, err
		}
	}

	fmt.Fprintf(f.log, "Fetched %d works\n", fetched)
	return fetched, nil
}

func (f *Fetcher) fetchWorks(ctx context.Context, ids []string, dest string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dest, err)
	}

	fetched := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return fetched, err
		}

		path := filepath.Join(dest, id+".json")
		if !f.force {
			if _, err := os.Stat(path); err == nil {
				continue
			}
		}

		work, err := f.client.GetWork(ctx, id)
		if err != nil {
			fmt.Fprintf(f.log, "failed to fetch %s: %v\n", id, err)
			continue
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, work.Raw, "", "  "); err != nil {
			pretty.Reset()
			pretty.Write(work.Raw)
		}
		if err := os.WriteFile(path, pretty.Bytes(), 0o644); err != nil {
			return fetched, fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Fprintf(f.log, "fetched %s\n", id)
		fetched++
	}
	return fetched, nil
}

// CollectIDs returns the distinct work identifiers present in a database,
// in entry order.
func CollectIDs(db *bibtex.Database) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, entry := range db.Entries {
		id, ok := entry.Get(IDField)
		if !ok || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
