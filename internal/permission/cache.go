// ABOUTME: Thread-safe cache for permission decisions.
// ABOUTME: Cleared wholesale on a TTL timer rather than per-entry expiry.

package permission

import (
	"sync"
	"time"
)

// Cache check kinds, part of every cache key.
const (
	checkKindTool    = "tool"
	checkKindProject = "project"
)

// cacheKey identifies one cached decision.
type cacheKey struct {
	userID string
	kind   string
	target string
}

// decisionCache stores permission check results until the next wholesale
// clear. Clearing everything on a timer keeps the staleness bound simple:
// no decision outlives one TTL interval.
type decisionCache struct {
	mu        sync.RWMutex
	decisions map[cacheKey]CheckResult
	ttl       time.Duration
	done      chan struct{}
	closed    bool
}

// newDecisionCache creates a cache and starts its background clear timer.
func newDecisionCache(ttl time.Duration) *decisionCache {
	c := &decisionCache{
		decisions: make(map[cacheKey]CheckResult),
		ttl:       ttl,
		done:      make(chan struct{}),
	}
	go c.clearLoop()
	return c
}

// get returns the cached result for key, if present.
func (c *decisionCache) get(key cacheKey) (CheckResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result, ok := c.decisions[key]
	return result, ok
}

// put stores a result for key.
func (c *decisionCache) put(key cacheKey, result CheckResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decisions[key] = result
}

// clear drops every cached decision.
func (c *decisionCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decisions = make(map[cacheKey]CheckResult)
}

// size returns the number of cached decisions.
func (c *decisionCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.decisions)
}

// clearLoop runs in a background goroutine, clearing the cache every TTL.
func (c *decisionCache) clearLoop() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.clear()
		case <-c.done:
			return
		}
	}
}

// Close stops the background clear goroutine. Safe to call multiple times.
func (c *decisionCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		close(c.done)
		c.closed = true
	}
}
