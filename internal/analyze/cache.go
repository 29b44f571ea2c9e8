package analyze

import (
	"sort"
	"sync"
)

// CharacterCache accumulates every accepted character name across the scenes
// and documents processed with it. The pipeline only ever writes to it; the
// owner decides when to read it out and when to reset it, typically once per
// document batch, so memory does not grow without bound in a long-running
// process.
type CharacterCache struct {
	mu    sync.Mutex
	names map[string]struct{}
}

// NewCharacterCache returns an empty cache.
func NewCharacterCache() *CharacterCache {
	return &CharacterCache{names: make(map[string]struct{})}
}

// Add records a normalized character name.
func (c *CharacterCache) Add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names[name] = struct{}{}
}

// Names returns a sorted snapshot of the accumulated names.
func (c *CharacterCache) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.names))
	for n := range c.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct names seen so far.
func (c *CharacterCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.names)
}

// Reset clears the cache, scoping it to a new document batch.
func (c *CharacterCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = make(map[string]struct{})
}
