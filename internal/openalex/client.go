// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex is a client for the OpenAlex scholarly-works catalog.
// It covers the three operations the tool needs: title search for match
// candidates, single-work fetch, and batch fetch by identifier list.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/bibmatch/internal/httputil"
	"github.com/pdiddy/bibmatch/internal/match"
	"github.com/pdiddy/bibmatch/pkg/types"
)

// worksBase is the OpenAlex Works endpoint. Declared as a var so tests can
// substitute an httptest server.
var worksBase = "https://api.openalex.org/works"

const (
	defaultPageSize = 25
	batchSize       = 50
	defaultRate     = 5.0
)

// Client queries the OpenAlex API. Requests go through a rate limiter for
// polite-pool compliance and transient failures are retried with backoff.
type Client struct {
	httpClient *http.Client
	cfg        types.CatalogConfig
	limiter    *rate.Limiter
}

// NewClient builds a client from catalog settings.
func NewClient(cfg types.CatalogConfig) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRate
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Search queries the catalog for works matching a title and returns them as
// match candidates with short-form identifiers.
func (c *Client) Search(ctx context.Context, title string) ([]match.Candidate, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("empty search title")
	}

	params := url.Values{
		"search":   {title},
		"per_page": {strconv.Itoa(c.cfg.PageSize)},
		"page":     {"1"},
	}

	var listing worksListing
	if err := c.getJSON(ctx, worksBase, params, &listing); err != nil {
		return nil, fmt.Errorf("searching works: %w", err)
	}

	candidates := make([]match.Candidate, 0, len(listing.Results))
	for _, raw := range listing.Results {
		var w Work
		if err := json.Unmarshal(raw, &w); err != nil {
			continue
		}
		candidates = append(candidates, match.Candidate{
			ID:      ShortID(w.ID),
			Title:   w.Title,
			Authors: w.AuthorNames(),
		})
	}
	return candidates, nil
}

// FetchedWork pairs the decoded work with the raw JSON as the API returned
// it, so callers can persist the complete record.
type FetchedWork struct {
	Work
	Raw json.RawMessage
}

// GetWork fetches a single work by short or full identifier.
func (c *Client) GetWork(ctx context.Context, id string) (*FetchedWork, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, worksBase+"/"+ShortID(id), nil, &raw); err != nil {
		return nil, fmt.Errorf("fetching work %s: %w", ShortID(id), err)
	}

	fw := &FetchedWork{Raw: raw}
	if err := json.Unmarshal(raw, &fw.Work); err != nil {
		return nil, fmt.Errorf("parsing work %s: %w", ShortID(id), err)
	}
	return fw, nil
}

// BatchWorks fetches works by identifier in batches of 50 using the
// pipe-separated openalex filter, returning them keyed by short ID. A batch
// that fails is reported through the error but already-fetched batches are
// still returned.
func (c *Client) BatchWorks(ctx context.Context, ids []string) (map[string]*FetchedWork, error) {
	works := make(map[string]*FetchedWork, len(ids))

	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		short := make([]string, len(batch))
		for i, id := range batch {
			short[i] = ShortID(id)
		}

		params := url.Values{
			"filter":   {"openalex:" + strings.Join(short, "|")},
			"per_page": {strconv.Itoa(batchSize)},
		}

		var listing worksListing
		if err := c.getJSON(ctx, worksBase, params, &listing); err != nil {
			return works, fmt.Errorf("fetching batch of %d works: %w", len(batch), err)
		}

		for _, raw := range listing.Results {
			fw := &FetchedWork{Raw: raw}
			if err := json.Unmarshal(raw, &fw.Work); err != nil {
				continue
			}
			works[ShortID(fw.ID)] = fw
		}
	}
	return works, nil
}

func (c *Client) getJSON(ctx context.Context, base string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if params == nil {
		params = url.Values{}
	}
	if c.cfg.Email != "" {
		params.Set("mailto", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}

	reqURL := base
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries)
	if err != nil {
		return fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	return nil
}

type worksListing struct {
	Meta struct {
		Count   int `json:"count"`
		PerPage int `json:"per_page"`
		Page    int `json:"page"`
	} `json:"meta"`
	Results []json.RawMessage `json:"results"`
}
