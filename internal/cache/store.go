// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache maintains a local mirror of catalog records and their PDFs.
// Documents live as files in the cache directory; a SQLite inventory tracks
// what has been fetched so populate runs are incremental.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bibmatch/internal/openalex"
	"github.com/pdiddy/bibmatch/pkg/types"
)

const dbFile = "inventory.db"

// Store is the cache inventory database plus the directory it indexes.
type Store struct {
	db  *sql.DB
	dir string
}

// Open opens or creates the cache at cfg.Dir, creating the schema when the
// inventory database does not exist yet.
func Open(cfg types.CacheConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("cache directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening inventory database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS works (
		id TEXT PRIMARY KEY,
		title TEXT,
		publication_year INTEGER,
		pdf_url TEXT,
		fetched_at TEXT NOT NULL,
		has_pdf INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// WorkPath returns where a work's JSON document lives in the cache.
func (s *Store) WorkPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// PDFPath returns where a work's PDF lives in the cache.
func (s *Store) PDFPath(id string) string {
	return filepath.Join(s.dir, id+".pdf")
}

// HasWork reports whether a work is already in the inventory.
func (s *Store) HasWork(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM works WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying inventory: %w", err)
	}
	return n > 0, nil
}

// RecordWork upserts a fetched work into the inventory.
func (s *Store) RecordWork(ctx context.Context, work *openalex.FetchedWork) error {
	pdfURL := ""
	if work.BestOALocation != nil {
		pdfURL = work.BestOALocation.PDFURL
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO works (id, title, publication_year, pdf_url, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, publication_year=excluded.publication_year,
			pdf_url=excluded.pdf_url, fetched_at=excluded.fetched_at`,
		openalex.ShortID(work.ID), work.Title, work.PublicationYear,
		pdfURL, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting work: %w", err)
	}
	return nil
}

// MarkPDF records that a work's PDF has been downloaded.
func (s *Store) MarkPDF(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE works SET has_pdf = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking PDF for %s: %w", id, err)
	}
	return nil
}

// pendingPDF is a cached work whose PDF has not been downloaded yet.
type pendingPDF struct {
	ID     string
	PDFURL string
}

// pendingPDFs lists works with a known PDF location and no downloaded PDF.
func (s *Store) pendingPDFs(ctx context.Context) ([]pendingPDF, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pdf_url FROM works WHERE has_pdf = 0 AND pdf_url != '' ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying pending PDFs: %w", err)
	}
	defer rows.Close()

	var pending []pendingPDF
	for rows.Next() {
		var p pendingPDF
		if err := rows.Scan(&p.ID, &p.PDFURL); err != nil {
			return nil, fmt.Errorf("scanning pending PDF: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// Status summarizes the cache inventory.
type Status struct {
	Works int
	PDFs  int
}

// Status reports how many works and PDFs the cache holds.
func (s *Store) Status(ctx context.Context) (Status, error) {
	var st Status
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*), coalesce(sum(has_pdf), 0) FROM works`).Scan(&st.Works, &st.PDFs)
	if err != nil {
		return Status{}, fmt.Errorf("querying status: %w", err)
	}
	return st, nil
}
