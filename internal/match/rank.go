// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"sort"

	"github.com/pdiddy/bibmatch/pkg/types"
)

// Candidate is a remote catalog work proposed as a possible match.
type Candidate struct {
	// ID is the catalog's canonical identifier in short form (e.g. "W2741809807").
	ID string

	// Title is the work title as returned by the catalog.
	Title string

	// Authors lists author display names in catalog order.
	Authors []string
}

// ScoredCandidate pairs a candidate with its similarity scores, both in [0,100].
type ScoredCandidate struct {
	Candidate   Candidate
	TitleScore  int
	AuthorScore int
}

// Rank scores candidates against a local title and author list, drops any
// whose title score is below cfg.TitleLow, and orders the rest descending by
// (title score, author score). The sort is stable: candidates the scores
// cannot separate keep catalog order, so output is deterministic.
func Rank(title string, authors []string, candidates []Candidate, cfg types.MatchConfig) []ScoredCandidate {
	var scored []ScoredCandidate
	for _, c := range candidates {
		ts := ScoreTitle(title, c.Title)
		if ts < cfg.TitleLow {
			continue
		}
		scored = append(scored, ScoredCandidate{
			Candidate:   c,
			TitleScore:  ts,
			AuthorScore: ScoreAuthors(authors, c.Authors, cfg.AuthorThreshold),
		})
	}
	sortCandidates(scored)
	return scored
}

func sortCandidates(scored []ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].TitleScore != scored[j].TitleScore {
			return scored[i].TitleScore > scored[j].TitleScore
		}
		return scored[i].AuthorScore > scored[j].AuthorScore
	})
}
