// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/bibmatch/internal/match"
)

// TerminalPrompter asks the operator to confirm low-confidence matches over
// a line-oriented stream, normally stdin/stdout.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// Confirm shows the local entry next to the candidate with both scores and
// accepts on a "y" answer. Anything else, including EOF, rejects.
func (p *TerminalPrompter) Confirm(rec match.Record, sc match.ScoredCandidate) (bool, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}

	fmt.Fprintf(p.Out, "\nPossible match for %q:\n", rec.Title)
	if len(rec.Authors) > 0 {
		fmt.Fprintf(p.Out, "  local authors: %s\n", strings.Join(rec.Authors, "; "))
	}
	fmt.Fprintf(p.Out, "  candidate:     %q (%s)\n", sc.Candidate.Title, sc.Candidate.ID)
	if len(sc.Candidate.Authors) > 0 {
		fmt.Fprintf(p.Out, "  cand. authors: %s\n", strings.Join(sc.Candidate.Authors, "; "))
	}
	fmt.Fprintf(p.Out, "  title score %d%%, author score %d%%\n", sc.TitleScore, sc.AuthorScore)
	fmt.Fprint(p.Out, "Accept this match? [y/N]: ")

	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
