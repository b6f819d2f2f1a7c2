// ABOUTME: Tests for the decision cache's wholesale TTL clearing.
// ABOUTME: Covers get/put, clear, Close, and concurrent access.

package permission

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecisionCache_PutGet(t *testing.T) {
	c := newDecisionCache(time.Minute)
	defer c.Close()

	key := cacheKey{userID: "alice", kind: checkKindTool, target: "issues"}

	_, ok := c.get(key)
	assert.False(t, ok)

	c.put(key, CheckResult{Allowed: true})
	got, ok := c.get(key)
	assert.True(t, ok)
	assert.True(t, got.Allowed)

	// Same user and target under a different kind is a different entry.
	_, ok = c.get(cacheKey{userID: "alice", kind: checkKindProject, target: "issues"})
	assert.False(t, ok)
}

func TestDecisionCache_ClearDropsEverything(t *testing.T) {
	c := newDecisionCache(time.Minute)
	defer c.Close()

	for i := 0; i < 5; i++ {
		key := cacheKey{userID: "u", kind: checkKindTool, target: fmt.Sprintf("tool-%d", i)}
		c.put(key, CheckResult{Allowed: true})
	}
	assert.Equal(t, 5, c.size())

	c.clear()
	assert.Equal(t, 0, c.size())
}

func TestDecisionCache_TimerClearsEntries(t *testing.T) {
	c := newDecisionCache(20 * time.Millisecond)
	defer c.Close()

	key := cacheKey{userID: "u", kind: checkKindTool, target: "projects"}
	c.put(key, CheckResult{Allowed: true})

	assert.Eventually(t, func() bool {
		_, ok := c.get(key)
		return !ok
	}, time.Second, 5*time.Millisecond, "entry should be dropped by the clear timer")
}

func TestDecisionCache_CloseIsIdempotent(t *testing.T) {
	c := newDecisionCache(time.Minute)
	c.Close()
	c.Close() // must not panic
}

func TestDecisionCache_ConcurrentAccess(t *testing.T) {
	c := newDecisionCache(10 * time.Millisecond)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := cacheKey{
					userID: fmt.Sprintf("user-%d", n),
					kind:   checkKindTool,
					target: fmt.Sprintf("tool-%d", j%7),
				}
				c.put(key, CheckResult{Allowed: j%2 == 0})
				c.get(key)
			}
		}(i)
	}
	wg.Wait()
}
