// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/pdiddy/bibmatch/pkg/types"
)

// fakeLookup returns canned candidates and counts calls.
type fakeLookup struct {
	candidates []Candidate
	err        error
	calls      int
}

func (f *fakeLookup) Search(_ context.Context, _ string) ([]Candidate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

// scriptPrompter answers prompts from a fixed script and counts them.
type scriptPrompter struct {
	answers []bool
	asked   int
}

func (p *scriptPrompter) Confirm(_ Record, _ ScoredCandidate) (bool, error) {
	if p.asked >= len(p.answers) {
		return false, nil
	}
	answer := p.answers[p.asked]
	p.asked++
	return answer, nil
}

func newTestEngine(lookup Lookup, prompter Prompter) *Engine {
	return NewEngine(lookup, prompter, NewLookupCache(), types.DefaultMatchConfig(), io.Discard)
}

func TestResolveAlreadyResolvedIsNoOp(t *testing.T) {
	lookup := &fakeLookup{}
	eng := newTestEngine(lookup, nil)

	out := eng.Resolve(context.Background(), Record{
		Title: "Attention Is All You Need",
		ID:    "W2741809807",
	})

	if out.State != StateAlreadyResolved {
		t.Fatalf("State = %s, want %s", out.State, StateAlreadyResolved)
	}
	if !out.Resolved || out.ID != "W2741809807" || out.Source != SourceNone {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if out.Accepted() {
		t.Error("already-resolved outcome must not request a write-back")
	}
	if lookup.calls != 0 {
		t.Errorf("lookup called %d times, want 0", lookup.calls)
	}
}

func TestResolveMissingTitleSkips(t *testing.T) {
	lookup := &fakeLookup{}
	eng := newTestEngine(lookup, nil)

	out := eng.Resolve(context.Background(), Record{Title: "   "})

	if out.State != StateNoTitle {
		t.Fatalf("State = %s, want %s", out.State, StateNoTitle)
	}
	if out.Resolved || out.ID != "" {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if lookup.calls != 0 {
		t.Errorf("lookup called %d times, want 0", lookup.calls)
	}
}

func TestResolveAutoAccept(t *testing.T) {
	lookup := &fakeLookup{candidates: []Candidate{
		{ID: "W2741809807", Title: "Attention is all you need", Authors: []string{"Ashish Vaswani", "Noam Shazeer"}},
	}}
	eng := newTestEngine(lookup, nil)

	out := eng.Resolve(context.Background(), Record{
		Title:   "Attention Is All You Need",
		Authors: []string{"Ashish Vaswani"},
	})

	if out.State != StateAutoAccepted {
		t.Fatalf("State = %s, want %s", out.State, StateAutoAccepted)
	}
	if !out.Resolved || out.ID != "W2741809807" || out.Source != SourceAuto {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if out.TitleScore < 90 || out.AuthorScore != 100 {
		t.Errorf("scores = (%d, %d), want (>=90, 100)", out.TitleScore, out.AuthorScore)
	}
}

func TestResolveAutoAcceptSkipsUnqualifiedHigherRank(t *testing.T) {
	// The first-ranked candidate (exact title, partial author overlap)
	// fails the author threshold; the second clears both thresholds. The
	// scan must re-check the predicate per candidate instead of assuming
	// it from rank position.
	lookup := &fakeLookup{candidates: []Candidate{
		{ID: "W1", Title: "Sparse Coding Methods in Vision", Authors: []string{"Ann Lee", "Bo Chen"}},
		{ID: "W2", Title: "Sparse Codng Methods in Vision", Authors: []string{"Ann Lee", "Bo Chen", "Cara Diaz"}},
	}}
	eng := newTestEngine(lookup, nil)

	out := eng.Resolve(context.Background(), Record{
		Title:   "Sparse Coding Methods in Vision",
		Authors: []string{"Ann Lee", "Bo Chen", "Cara Diaz"},
	})

	if out.State != StateAutoAccepted || out.ID != "W2" {
		t.Errorf("outcome = %+v, want auto-accept of W2", out)
	}
}

func TestResolveManualAcceptSecondCandidate(t *testing.T) {
	// Candidates pass the relevance bar on title but fail the author
	// threshold, so none auto-qualifies.
	lookup := &fakeLookup{candidates: []Candidate{
		{ID: "W1", Title: "Sparse Coding Methods"},
		{ID: "W2", Title: "Sparse Coding Methods"},
		{ID: "W3", Title: "Sparse Coding Methods"},
	}}
	prompter := &scriptPrompter{answers: []bool{false, true}}
	eng := newTestEngine(lookup, prompter)

	out := eng.Resolve(context.Background(), Record{
		Title:   "Sparse Coding Methods",
		Authors: []string{"Olshausen, Bruno"},
	})

	if out.State != StateManualAccepted {
		t.Fatalf("State = %s, want %s", out.State, StateManualAccepted)
	}
	if out.ID != "W2" || out.Source != SourceManual {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if prompter.asked != 2 {
		t.Errorf("prompted %d times, want 2 (no prompt after acceptance)", prompter.asked)
	}
}

func TestResolveManualPromptCap(t *testing.T) {
	var candidates []Candidate
	for _, id := range []string{"W1", "W2", "W3", "W4", "W5", "W6", "W7"} {
		candidates = append(candidates, Candidate{ID: id, Title: "Sparse Coding Methods"})
	}
	lookup := &fakeLookup{candidates: candidates}
	prompter := &scriptPrompter{answers: []bool{false, false, false, false, false, false, false}}
	eng := newTestEngine(lookup, prompter)

	out := eng.Resolve(context.Background(), Record{
		Title:   "Sparse Coding Methods",
		Authors: []string{"Olshausen, Bruno"},
	})

	if out.State != StateUnresolved {
		t.Fatalf("State = %s, want %s", out.State, StateUnresolved)
	}
	if prompter.asked != 5 {
		t.Errorf("prompted %d times, want 5", prompter.asked)
	}
}

func TestResolveNonInteractiveLeavesUnresolved(t *testing.T) {
	lookup := &fakeLookup{candidates: []Candidate{
		{ID: "W1", Title: "Sparse Coding Methods"},
	}}
	eng := newTestEngine(lookup, nil)

	out := eng.Resolve(context.Background(), Record{
		Title:   "Sparse Coding Methods",
		Authors: []string{"Olshausen, Bruno"},
	})

	if out.State != StateUnresolved || out.Resolved || out.ID != "" {
		t.Errorf("unexpected outcome: %+v", out)
	}
}

func TestResolveLookupFailureDegradesToUnresolved(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("connection refused")}
	eng := newTestEngine(lookup, nil)

	out := eng.Resolve(context.Background(), Record{Title: "Sparse Coding Methods"})

	if out.State != StateUnresolved {
		t.Fatalf("State = %s, want %s", out.State, StateUnresolved)
	}

	// Failures are not cached: the same title triggers another lookup.
	eng.Resolve(context.Background(), Record{Title: "Sparse Coding Methods"})
	if lookup.calls != 2 {
		t.Errorf("lookup called %d times, want 2", lookup.calls)
	}
}

func TestResolveMemoizesLookupsByTitle(t *testing.T) {
	lookup := &fakeLookup{candidates: []Candidate{
		{ID: "W1", Title: "Sparse Coding Methods", Authors: []string{"Bruno Olshausen"}},
	}}
	eng := newTestEngine(lookup, nil)

	rec := Record{Title: "Sparse Coding Methods", Authors: []string{"Bruno Olshausen"}}
	first := eng.Resolve(context.Background(), rec)
	second := eng.Resolve(context.Background(), rec)

	if lookup.calls != 1 {
		t.Errorf("lookup called %d times, want 1", lookup.calls)
	}
	if first.ID != second.ID || first.State != second.State {
		t.Errorf("outcomes diverged: %+v vs %+v", first, second)
	}
}
