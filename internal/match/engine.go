// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/bibmatch/pkg/types"
)

// Lookup searches the remote catalog for candidate works by title.
type Lookup interface {
	Search(ctx context.Context, title string) ([]Candidate, error)
}

// Prompter asks the operator whether a low-confidence candidate matches the
// record. Confirm blocks until the operator answers.
type Prompter interface {
	Confirm(rec Record, sc ScoredCandidate) (bool, error)
}

// Record is the engine's view of one local bibliographic entry.
type Record struct {
	// Title is the entry title; empty means the entry has none.
	Title string

	// Authors lists parsed display names ("First Last").
	Authors []string

	// ID is an already-assigned external identifier, empty when unresolved.
	ID string
}

// State identifies the terminal state of the per-record state machine.
type State string

const (
	StateAlreadyResolved State = "already-resolved"
	StateNoTitle         State = "no-title"
	StateAutoAccepted    State = "auto-accepted"
	StateManualAccepted  State = "manual-accepted"
	StateUnresolved      State = "unresolved"
)

// Source records how a resolution outcome was reached.
type Source string

const (
	SourceNone   Source = "none"
	SourceAuto   Source = "auto"
	SourceManual Source = "manual"
)

// Outcome is the result of resolving one record. The identifier, when
// present, is taken verbatim from the accepted candidate; the engine never
// fabricates one.
type Outcome struct {
	Resolved    bool
	ID          string
	Source      Source
	State       State
	TitleScore  int
	AuthorScore int
}

// Accepted reports whether this outcome assigned a new identifier that the
// caller should write back onto the record.
func (o Outcome) Accepted() bool {
	return o.State == StateAutoAccepted || o.State == StateManualAccepted
}

// Engine applies the tiered acceptance policy to one record at a time.
// Records that already carry an identifier, or carry no title, terminate
// without a catalog lookup. Otherwise candidates are ranked and the first
// one clearing both high-confidence thresholds is accepted automatically;
// failing that, a prompter (when configured) is offered the top-ranked
// candidates one at a time, and the first acceptance wins.
//
// The engine is strictly sequential: no lookup or prompt ever overlaps
// another, and nothing fatal escapes Resolve. Every failure mode degrades to
// an unresolved outcome so batch processing continues.
type Engine struct {
	lookup   Lookup
	prompter Prompter // nil disables manual confirmation
	cache    *LookupCache
	cfg      types.MatchConfig
	log      io.Writer
}

// NewEngine builds an engine. prompter may be nil; cache may be nil when
// memoization is not wanted; log receives per-record progress lines.
func NewEngine(lookup Lookup, prompter Prompter, cache *LookupCache, cfg types.MatchConfig, log io.Writer) *Engine {
	if log == nil {
		log = io.Discard
	}
	return &Engine{
		lookup:   lookup,
		prompter: prompter,
		cache:    cache,
		cfg:      cfg,
		log:      log,
	}
}

// Resolve runs the state machine for one record and returns its outcome.
func (e *Engine) Resolve(ctx context.Context, rec Record) Outcome {
	if rec.ID != "" {
		fmt.Fprintf(e.log, "%q already has OpenAlex ID %s, skipping\n", titleOrPlaceholder(rec.Title), rec.ID)
		return Outcome{Resolved: true, ID: rec.ID, Source: SourceNone, State: StateAlreadyResolved}
	}

	if strings.TrimSpace(rec.Title) == "" {
		fmt.Fprintln(e.log, "skipping entry with missing title")
		return Outcome{Source: SourceNone, State: StateNoTitle}
	}

	ranked := Rank(rec.Title, rec.Authors, e.searchCandidates(ctx, rec.Title), e.cfg)

	// The acceptance predicate differs from the sort key, so it is
	// re-checked per candidate rather than assumed from rank position.
	for _, sc := range ranked {
		if sc.TitleScore >= e.cfg.TitleHigh && sc.AuthorScore >= e.cfg.AuthorThreshold {
			fmt.Fprintf(e.log, "matched %q with OpenAlex ID %s (title %d%%, author %d%%)\n",
				rec.Title, sc.Candidate.ID, sc.TitleScore, sc.AuthorScore)
			return Outcome{
				Resolved:    true,
				ID:          sc.Candidate.ID,
				Source:      SourceAuto,
				State:       StateAutoAccepted,
				TitleScore:  sc.TitleScore,
				AuthorScore: sc.AuthorScore,
			}
		}
	}

	if e.prompter != nil && len(ranked) > 0 {
		if out, ok := e.confirmManually(rec, ranked); ok {
			return out
		}
	}

	fmt.Fprintf(e.log, "no high-confidence match for %q\n", rec.Title)
	return Outcome{Source: SourceNone, State: StateUnresolved}
}

// confirmManually offers up to cfg.MaxPrompts ranked candidates for manual
// accept/reject. The first acceptance ends the scan.
func (e *Engine) confirmManually(rec Record, ranked []ScoredCandidate) (Outcome, bool) {
	limit := e.cfg.MaxPrompts
	if limit <= 0 {
		limit = types.DefaultMatchConfig().MaxPrompts
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	for _, sc := range ranked {
		accept, err := e.prompter.Confirm(rec, sc)
		if err != nil {
			fmt.Fprintf(e.log, "manual confirmation aborted for %q: %v\n", rec.Title, err)
			return Outcome{}, false
		}
		if accept {
			fmt.Fprintf(e.log, "accepted match for %q with OpenAlex ID %s\n", rec.Title, sc.Candidate.ID)
			return Outcome{
				Resolved:    true,
				ID:          sc.Candidate.ID,
				Source:      SourceManual,
				State:       StateManualAccepted,
				TitleScore:  sc.TitleScore,
				AuthorScore: sc.AuthorScore,
			}, true
		}
	}
	return Outcome{}, false
}

// searchCandidates performs the catalog lookup, memoized per title. A lookup
// failure degrades to zero candidates and is not cached, so the title is
// retried if it appears again.
func (e *Engine) searchCandidates(ctx context.Context, title string) []Candidate {
	if e.cache != nil {
		if cands, ok := e.cache.get(title); ok {
			return cands
		}
	}

	cands, err := e.lookup.Search(ctx, title)
	if err != nil {
		fmt.Fprintf(e.log, "catalog search failed for %q: %v\n", title, err)
		return nil
	}

	if e.cache != nil {
		e.cache.put(title, cands)
	}
	return cands
}

func titleOrPlaceholder(title string) string {
	if strings.TrimSpace(title) == "" {
		return "No Title"
	}
	return title
}
