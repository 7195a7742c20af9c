// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration structures shared across stages.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bibmatch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// MatchConfig holds the acceptance thresholds for the resolution engine.
// The defaults mirror the tuning the tool has always shipped with; they are
// configurable because no derivation for them exists beyond that tuning.
type MatchConfig struct {
	// TitleHigh is the minimum title score for automatic acceptance (default 90).
	TitleHigh int `json:"title_high" yaml:"title_high"`

	// TitleLow is the minimum title score for a candidate to be considered
	// at all, including interactively (default 50).
	TitleLow int `json:"title_low" yaml:"title_low"`

	// AuthorThreshold serves double duty: the minimum per-author partial
	// match score, and the minimum overall author score for automatic
	// acceptance (default 80).
	AuthorThreshold int `json:"author_threshold" yaml:"author_threshold"`

	// MaxPrompts caps how many low-confidence candidates are offered for
	// manual confirmation per record (default 5).
	MaxPrompts int `json:"max_prompts" yaml:"max_prompts"`
}

// DefaultMatchConfig returns the standard thresholds.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		TitleHigh:       90,
		TitleLow:        50,
		AuthorThreshold: 80,
		MaxPrompts:      5,
	}
}

// CatalogConfig holds settings for the OpenAlex catalog client.
type CatalogConfig struct {
	HTTPConfig `yaml:",inline"`

	// Email is sent as the mailto parameter for polite pool access.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// APIKey is an optional OpenAlex premium API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// PageSize is the number of works requested per title search (default 25).
	PageSize int `json:"page_size" yaml:"page_size"`

	// RequestsPerSecond throttles calls to the API (default 5).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxRetries is the number of retry attempts on transient HTTP errors
	// (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CacheConfig holds settings for the local work/PDF cache.
type CacheConfig struct {
	// Dir is the cache directory holding <workID>.json, <workID>.pdf and
	// the inventory database.
	Dir string `json:"dir" yaml:"dir"`
}

// ProcessConfig holds settings for a reconciliation run.
type ProcessConfig struct {
	// Interactive enables manual confirmation of low-confidence matches.
	Interactive bool `json:"interactive" yaml:"interactive"`

	// Force reprocesses files even when the "-oa.bib" output already exists.
	Force bool `json:"force" yaml:"force"`

	// ReportPath, when set, receives a YAML run report.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}
