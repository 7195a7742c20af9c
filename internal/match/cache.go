// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

// LookupCache memoizes catalog lookups by title for the duration of one run,
// so duplicate titles across files cost a single network call. It is an
// explicit object scoped to the engine that owns it; nothing persists across
// runs. Only successful lookups are cached, so a transient catalog failure
// is retried the next time the title appears.
type LookupCache struct {
	entries map[string][]Candidate
}

// NewLookupCache returns an empty cache.
func NewLookupCache() *LookupCache {
	return &LookupCache{entries: make(map[string][]Candidate)}
}

// Len reports how many distinct titles have been cached.
func (c *LookupCache) Len() int {
	return len(c.entries)
}

func (c *LookupCache) get(title string) ([]Candidate, bool) {
	cands, ok := c.entries[title]
	return cands, ok
}

func (c *LookupCache) put(title string, cands []Candidate) {
	c.entries[title] = cands
}
