package paintdry

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// EntryCache keeps the result of an EntryFetcher in memory for a TTL.
// Its Fetch method is itself an EntryFetcher, so a Blog can sit on top.
type EntryCache struct {
	mu      sync.RWMutex
	posts   []*Post
	loaded  bool
	fetched time.Time
	ttl     time.Duration
	fetch   EntryFetcher
	now     func() time.Time
}

// NewEntryCache creates an EntryCache in front of fetch.
func NewEntryCache(fetch EntryFetcher, ttl time.Duration) *EntryCache {
	return &EntryCache{fetch: fetch, ttl: ttl, now: time.Now}
}

func (c *EntryCache) valid() bool {
	return c.loaded && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next Fetch reloads.
func (c *EntryCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.loaded = false
	c.mu.Unlock()
}

// Fetch returns the cached posts, reloading them when stale. It tries a
// read lock first and only takes the write lock to reload.
func (c *EntryCache) Fetch() ([]*Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.fetch()
	if err != nil {
		return nil, err
	}
	c.posts = posts
	c.loaded = true
	c.fetched = c.now()
	return posts, nil
}
