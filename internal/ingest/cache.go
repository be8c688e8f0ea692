package ingest

import (
	"crypto/sha256"
	"sync"
)

// ParseCache memoizes parse results keyed by upload content hash. Uploads
// are immutable once received, so entries never need invalidation; the
// working set is a handful of files per session.
type ParseCache struct {
	mu      sync.RWMutex
	entries map[[sha256.Size]byte]*LoadResult
}

func NewParseCache() *ParseCache {
	return &ParseCache{entries: make(map[[sha256.Size]byte]*LoadResult)}
}

// Get returns an isolated copy of the cached result for these exact bytes.
func (c *ParseCache) Get(raw []byte) (*LoadResult, bool) {
	key := sha256.Sum256(raw)
	c.mu.RLock()
	res, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	out := res.clone()
	out.FromCache = true
	return out, true
}

// Put stores an isolated copy of a successful parse under the content hash.
func (c *ParseCache) Put(raw []byte, res *LoadResult) {
	if res == nil || res.Table == nil {
		return
	}
	key := sha256.Sum256(raw)
	entry := res.clone()
	entry.FromCache = false
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// Len reports how many distinct uploads are cached.
func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
