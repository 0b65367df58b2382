package query

import (
	"sort"
	"sync"
)

// outcomeCache memoizes question -> outcome, keyed by the trimmed question
// text. Keys are exact-match; no fuzzy matching or normalization beyond
// trimming. Growth is unbounded within a session and cleared only on explicit
// reset. Guarded by a mutex so the pipeline can serve concurrent requests.
type outcomeCache struct {
	mu      sync.Mutex
	entries map[string]Outcome
}

func newOutcomeCache() *outcomeCache {
	return &outcomeCache{entries: map[string]Outcome{}}
}

func (c *outcomeCache) Get(question string) (Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	outcome, ok := c.entries[question]
	return outcome, ok
}

func (c *outcomeCache) Set(question string, outcome Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[question] = outcome
}

func (c *outcomeCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]Outcome{}
}

func (c *outcomeCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	questions := make([]string, 0, len(c.entries))
	for question := range c.entries {
		questions = append(questions, question)
	}
	sort.Strings(questions)

	return CacheStats{
		Count:     len(c.entries),
		Questions: questions,
	}
}
