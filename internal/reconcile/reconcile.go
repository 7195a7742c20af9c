// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile walks bibliography files, runs each entry through the
// resolution engine, and writes reconciled copies alongside the originals.
package reconcile

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/bibmatch/internal/bibtex"
	"github.com/pdiddy/bibmatch/internal/match"
	"github.com/pdiddy/bibmatch/pkg/types"
)

// IDField is the BibTeX field that carries the OpenAlex work identifier.
const IDField = "openalex"

// Result accumulates counters across one processing run.
type Result struct {
	Files     int `yaml:"files"`
	Entries   int `yaml:"entries"`
	Matched   int `yaml:"matched"`
	Unmatched int `yaml:"unmatched"`
	Skipped   int `yaml:"skipped"`
}

func (r *Result) add(other Result) {
	r.Files += other.Files
	r.Entries += other.Entries
	r.Matched += other.Matched
	r.Unmatched += other.Unmatched
	r.Skipped += other.Skipped
}

// Processor reconciles bibliography files against the catalog using a
// shared engine, so the lookup cache spans every file in the run.
type Processor struct {
	engine *match.Engine
	cfg    types.ProcessConfig
	log    io.Writer
}

// NewProcessor builds a processor. log receives per-file progress lines and
// the run summary.
func NewProcessor(engine *match.Engine, cfg types.ProcessConfig, log io.Writer) *Processor {
	if log == nil {
		log = io.Discard
	}
	return &Processor{engine: engine, cfg: cfg, log: log}
}

// ProcessPath reconciles every original bibliography under path, oldest
// first by the year in the filename. Individual file failures are logged
// and the run continues.
func (p *Processor) ProcessPath(ctx context.Context, path string) (Result, error) {
	files, err := bibtex.FindFiles(path, bibtex.ModeOriginal)
	if err != nil {
		return Result{}, err
	}
	files = bibtex.SortByYear(files)

	var total Result
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		res, err := p.ProcessFile(ctx, file)
		if err != nil {
			fmt.Fprintf(p.log, "failed to process %s: %v\n", file, err)
			continue
		}
		total.add(res)
	}

	fmt.Fprintf(p.log, "Processed %d entries, %d matches, %d unmatched\n",
		total.Entries, total.Matched, total.Unmatched)
	return total, nil
}

// ProcessFile reconciles a single bibliography file, writing the result to
// the "-oa.bib" sibling when at least one entry gained an identifier. Files
// whose output already exists are skipped unless force is configured.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Result, error) {
	outPath := bibtex.ProcessedPath(path)
	if !p.cfg.Force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(p.log, "skipping %s, output already exists\n", path)
			return Result{}, nil
		}
	}

	db, err := bibtex.Load(path)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintf(p.log, "processing %s (%d entries)\n", path, len(db.Entries))

	res := Result{Files: 1, Entries: len(db.Entries)}
	modified := false
	for _, entry := range db.Entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		out := p.engine.Resolve(ctx, recordFromEntry(entry))
		switch {
		case out.Accepted():
			entry.Set(IDField, out.ID)
			res.Matched++
			modified = true
		case out.State == match.StateAlreadyResolved:
			res.Matched++
		case out.State == match.StateNoTitle:
			res.Skipped++
		default:
			res.Unmatched++
		}
	}

	// Unmodified files get no output, so the next run retries them.
	if !modified {
		fmt.Fprintf(p.log, "no changes for %s, output not written\n", path)
		return res, nil
	}

	if err := bibtex.Save(outPath, db); err != nil {
		return res, err
	}
	return res, nil
}

// recordFromEntry maps a BibTeX entry to the engine's record type. LaTeX
// markup is cleaned first so titles and names compare on plain text.
func recordFromEntry(entry *bibtex.Entry) match.Record {
	bibtex.CleanEntry(entry)

	rec := match.Record{}
	if title, ok := entry.Get("title"); ok {
		rec.Title = title
	}
	if authors, ok := entry.Get("author"); ok {
		rec.Authors = match.ParseAuthorField(authors)
	}
	if id, ok := entry.Get(IDField); ok {
		rec.ID = id
	}
	return rec
}
