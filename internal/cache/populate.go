// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/pdiddy/bibmatch/internal/openalex"
)

// BatchClient fetches catalog works in bulk.
type BatchClient interface {
	BatchWorks(ctx context.Context, ids []string) (map[string]*openalex.FetchedWork, error)
}

// Populator fills the cache: work JSON from the catalog, PDFs from wherever
// the catalog says an open-access copy is hosted.
type Populator struct {
	store      *Store
	client     BatchClient
	httpClient *http.Client
	force      bool
	log        io.Writer
}

// NewPopulator builds a populator. When force is false, works already in
// the inventory are not fetched again. httpClient may be nil for work-only
// population.
func NewPopulator(store *Store, client BatchClient, httpClient *http.Client, force bool, log io.Writer) *Populator {
	if log == nil {
		log = io.Discard
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Populator{
		store:      store,
		client:     client,
		httpClient: httpClient,
		force:      force,
		log:        log,
	}
}

// Summary holds counts from one populate run.
type Summary struct {
	Fetched int
	Skipped int
	Failed  int
}

// PopulateWorks fetches the given work identifiers in batches, writes each
// record's JSON into the cache directory, and records it in the inventory.
func (p *Populator) PopulateWorks(ctx context.Context, ids []string) (Summary, error) {
	var summary Summary

	var wanted []string
	for _, id := range ids {
		if !p.force {
			have, err := p.store.HasWork(ctx, id)
			if err != nil {
				return summary, err
			}
			if have {
				summary.Skipped++
				continue
			}
		}
		wanted = append(wanted, id)
	}

	if len(wanted) == 0 {
		fmt.Fprintf(p.log, "all %d works already cached\n", summary.Skipped)
		return summary, nil
	}

	works, err := p.client.BatchWorks(ctx, wanted)
	if err != nil {
		fmt.Fprintf(p.log, "batch fetch incomplete: %v\n", err)
	}

	for _, id := range wanted {
		work, ok := works[id]
		if !ok {
			fmt.Fprintf(p.log, "catalog returned no record for %s\n", id)
			summary.Failed++
			continue
		}
		if err := p.saveWork(ctx, id, work); err != nil {
			fmt.Fprintf(p.log, "failed to cache %s: %v\n", id, err)
			summary.Failed++
			continue
		}
		summary.Fetched++
	}

	fmt.Fprintf(p.log, "works: fetched %d, skipped %d, failed %d\n",
		summary.Fetched, summary.Skipped, summary.Failed)
	return summary, nil
}

func (p *Populator) saveWork(ctx context.Context, id string, work *openalex.FetchedWork) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, work.Raw, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(work.Raw)
	}
	if err := os.WriteFile(p.store.WorkPath(id), pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing work JSON: %w", err)
	}
	return p.store.RecordWork(ctx, work)
}

// PopulatePDFs downloads the open-access PDF for every cached work that has
// a known location and no PDF yet. Download failures are logged and the run
// continues.
func (p *Populator) PopulatePDFs(ctx context.Context) (Summary, error) {
	pending, err := p.store.pendingPDFs(ctx)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, item := range pending {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := p.downloadPDF(ctx, item); err != nil {
			fmt.Fprintf(p.log, "failed to download PDF for %s: %v\n", item.ID, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(p.log, "downloaded PDF for %s\n", item.ID)
		summary.Fetched++
	}

	fmt.Fprintf(p.log, "PDFs: fetched %d, failed %d\n", summary.Fetched, summary.Failed)
	return summary, nil
}

// downloadPDF streams the PDF to a temp file and renames it into place, so
// an interrupted download never leaves a partial PDF under the final name.
func (p *Populator) downloadPDF(ctx context.Context, item pendingPDF) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.PDFURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, item.PDFURL)
	}

	final := p.store.PDFPath(item.ID)
	tmp, err := os.CreateTemp(p.store.dir, item.ID+".pdf.tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("streaming PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), final); err != nil {
		return fmt.Errorf("moving PDF into place: %w", err)
	}
	return p.store.MarkPDF(ctx, item.ID)
}
