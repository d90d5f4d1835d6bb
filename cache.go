package calc

import (
	"sync"

	"github.com/segmentio/fasthash/fnv1a"
)

// Cache memoizes Parse for programs which evaluate the same source text many
// times, like a calculator reading lines that get repeated. It is safe for
// concurrent use. The zero value is an empty cache with no limit.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64][]entry
	size    int
	max     int
}

type entry struct {
	src string
	ex  *Expr
}

// NewCache creates a cache holding up to max parsed expressions. When it is
// full, adding another expression empties it first. If max is not positive,
// the cache has no limit.
func NewCache(max int) *Cache {
	return &Cache{entries: make(map[uint64][]entry), max: max}
}

// Parse returns the parsed expression for src, parsing it if it is not
// already cached. Errors are returned as from Parse and are not cached.
func (c *Cache) Parse(src string) (*Expr, error) {
	h := fnv1a.HashString64(src)
	c.mu.Lock()
	for _, ent := range c.entries[h] {
		if ent.src == src {
			c.mu.Unlock()
			return ent.ex, nil
		}
	}
	c.mu.Unlock()
	// Parse outside the lock. Two goroutines parsing the same source at once
	// both insert it, which only wastes space.
	ex, err := Parse(src)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.max > 0 && c.size >= c.max {
		c.entries = make(map[uint64][]entry)
		c.size = 0
	}
	if c.entries == nil {
		c.entries = make(map[uint64][]entry)
	}
	c.entries[h] = append(c.entries[h], entry{src: src, ex: ex})
	c.size++
	return ex, nil
}

// Len returns the number of expressions in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}
