package server

import (
	"sync"
	"time"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/model"
)

// cacheKey identifies a unique tree read scope.
type cacheKey struct {
	Jvm    int
	Window string
	Depth  int
}

// cacheEntry holds a cached node tree with its timestamp.
type cacheEntry struct {
	nodes     []model.Node
	timestamp time.Time
}

// TreeCache provides a TTL-based cache for accessible node trees.
type TreeCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
}

// NewTreeCache creates a new cache. A ttl of 0 disables caching.
func NewTreeCache(ttl time.Duration) *TreeCache {
	return &TreeCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
	}
}

// Snapshot returns a cached node tree if within TTL, otherwise reads
// fresh. The caller must hold the provider mutex.
func (c *TreeCache) Snapshot(provider bridge.Provider, jvm int, window string, depth int) ([]model.Node, error) {
	if c.ttl == 0 {
		return readSnapshot(provider, jvm, window, depth)
	}

	key := cacheKey{Jvm: jvm, Window: window, Depth: depth}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && time.Since(entry.timestamp) < c.ttl {
		nodes := entry.nodes
		c.mu.Unlock()
		return nodes, nil
	}
	c.mu.Unlock()

	nodes, err := readSnapshot(provider, jvm, window, depth)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{nodes: nodes, timestamp: time.Now()}
	c.mu.Unlock()

	return nodes, nil
}

// InvalidateAll clears the entire cache.
func (c *TreeCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// readSnapshot materializes the scoped tree, releasing every handle.
func readSnapshot(provider bridge.Provider, jvm int, window string, depth int) ([]model.Node, error) {
	if jvm == 0 && window == "" {
		return model.Snapshot(provider, depth)
	}
	win, err := bridge.FindWindow(provider, jvm, window)
	if err != nil {
		return nil, err
	}
	defer win.Dispose()
	return []model.Node{model.FromNode(win, depth)}, nil
}
