// Package linecache caches grammar-highlighted lines between frames.
//
// Entries are keyed by language tag and line text, so edits elsewhere in a
// buffer never invalidate a line. When the cache is full the least recently
// used entries are evicted in batches.
package linecache

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dshills/kedit/internal/renderer/highlight"
)

// Key identifies a cached line.
type Key struct {
	Lang string
	Text string
}

// Config configures the line cache behavior.
type Config struct {
	// MaxCachedLines is the maximum number of lines to cache. Zero disables
	// caching.
	MaxCachedLines int

	// EvictionBatchSize is the number of entries to evict at once.
	EvictionBatchSize int
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		MaxCachedLines:    1000,
		EvictionBatchSize: 50,
	}
}

type entry struct {
	line   highlight.Line
	access uint64
}

// Cache stores highlighted lines. It is safe for concurrent use.
type Cache struct {
	mu sync.Mutex

	config  Config
	entries map[Key]*entry
	clock   uint64

	// Stats (atomic for thread-safe access without holding locks)
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a new line cache.
func New(config Config) *Cache {
	config.MaxCachedLines = max(config.MaxCachedLines, 0)
	if config.EvictionBatchSize <= 0 {
		config.EvictionBatchSize = 1
	}
	return &Cache{
		config:  config,
		entries: make(map[Key]*entry),
	}
}

// Get returns the cached line for key.
func (c *Cache) Get(key Key) (highlight.Line, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.clock++
	e.access = c.clock
	c.hits.Add(1)
	return e.line, true
}

// Put stores line under key, evicting old entries if the cache is full.
func (c *Cache) Put(key Key, line highlight.Line) {
	if c.config.MaxCachedLines == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.clock++
	c.entries[key] = &entry{line: line, access: c.clock}
	c.evictIfNeeded()
}

// evictIfNeeded drops the least recently used entries once the cache
// exceeds its size. Callers hold mu.
func (c *Cache) evictIfNeeded() {
	if len(c.entries) <= c.config.MaxCachedLines {
		return
	}

	type entryInfo struct {
		key    Key
		access uint64
	}

	entries := make([]entryInfo, 0, len(c.entries))
	for k, e := range c.entries {
		entries = append(entries, entryInfo{k, e.access})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].access < entries[j].access
	})

	toEvict := min(len(c.entries)-c.config.MaxCachedLines+c.config.EvictionBatchSize-1, len(entries))
	for i := range toEvict {
		delete(c.entries, entries[i].key)
	}
	c.evictions.Add(uint64(toEvict))
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Len returns the number of cached lines.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CacheStats contains cache statistics.
type CacheStats struct {
	Size      int
	MaxSize   int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Size:      c.Len(),
		MaxSize:   c.config.MaxCachedLines,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}
