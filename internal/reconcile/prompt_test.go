// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/bibmatch/internal/match"
)

func promptFixture() (match.Record, match.ScoredCandidate) {
	rec := match.Record{
		Title:   "Deep Residual Learning for Image Recognition",
		Authors: []string{"Kaiming He", "Xiangyu Zhang"},
	}
	sc := match.ScoredCandidate{
		Candidate: match.Candidate{
			ID:      "W2194775991",
			Title:   "Deep Residual Learning for Image Recognition",
			Authors: []string{"Kaiming He"},
		},
		TitleScore:  100,
		AuthorScore: 50,
	}
	return rec, sc
}

func TestTerminalPrompterAnswers(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		accept bool
	}{
		{"yes", "y\n", true},
		{"yes word", "YES\n", true},
		{"no", "n\n", false},
		{"blank defaults to no", "\n", false},
		{"eof defaults to no", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, sc := promptFixture()
			var out bytes.Buffer
			p := &TerminalPrompter{In: strings.NewReader(tt.input), Out: &out}

			accept, err := p.Confirm(rec, sc)
			if err != nil {
				t.Fatalf("Confirm() error: %v", err)
			}
			if accept != tt.accept {
				t.Errorf("Confirm() = %v, want %v", accept, tt.accept)
			}
		})
	}
}

func TestTerminalPrompterShowsScoresAndID(t *testing.T) {
	rec, sc := promptFixture()
	var out bytes.Buffer
	p := &TerminalPrompter{In: strings.NewReader("n\n"), Out: &out}

	if _, err := p.Confirm(rec, sc); err != nil {
		t.Fatalf("Confirm() error: %v", err)
	}

	for _, want := range []string{"W2194775991", "title score 100%", "author score 50%", "[y/N]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("prompt output missing %q:\n%s", want, out.String())
		}
	}
}

func TestTerminalPrompterSequentialReads(t *testing.T) {
	rec, sc := promptFixture()
	var out bytes.Buffer
	p := &TerminalPrompter{In: strings.NewReader("n\ny\n"), Out: &out}

	first, err := p.Confirm(rec, sc)
	if err != nil || first {
		t.Fatalf("first Confirm() = %v, %v; want false, nil", first, err)
	}
	second, err := p.Confirm(rec, sc)
	if err != nil || !second {
		t.Fatalf("second Confirm() = %v, %v; want true, nil", second, err)
	}
}
