// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

// ScoreTitle computes an order-insensitive token-set similarity between two
// titles after normalization, in [0,100]. Either side being absent scores 0.
// Scoring never panics past this boundary; any failure degrades to 0.
func ScoreTitle(local, remote string) (score int) {
	defer func() {
		if recover() != nil {
			score = 0
		}
	}()

	a, ok := NormalizeTitle(local)
	if !ok {
		return 0
	}
	b, ok := NormalizeTitle(remote)
	if !ok {
		return 0
	}
	return tokenSetRatio(a, b)
}

// ScoreAuthors returns the percentage of local authors found, via best
// partial-string similarity, in the remote author list. A local author
// counts as found when its best partial ratio against any remote name meets
// matchThreshold. Either list being empty scores 0.
//
// The measure is deliberately asymmetric: extra remote authors never lower
// the score, since catalog records often list more authors than the local
// entry carries.
func ScoreAuthors(local, remote []string, matchThreshold int) (score int) {
	defer func() {
		if recover() != nil {
			score = 0
		}
	}()

	if len(local) == 0 || len(remote) == 0 {
		return 0
	}

	normLocal := make([]string, len(local))
	for i, name := range local {
		normLocal[i], _ = NormalizeAuthorName(name)
	}
	normRemote := make([]string, len(remote))
	for i, name := range remote {
		normRemote[i], _ = NormalizeAuthorName(name)
	}

	matched := 0
	for _, la := range normLocal {
		best := 0
		for _, ra := range normRemote {
			if r := partialRatio(la, ra); r > best {
				best = r
				if best == 100 {
					break
				}
			}
		}
		if best >= matchThreshold {
			matched++
		}
	}
	return matched * 100 / len(local)
}
