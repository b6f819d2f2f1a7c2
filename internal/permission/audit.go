// ABOUTME: Bounded in-memory audit trail for permission decisions.
// ABOUTME: Fixed-size ring with FIFO eviction; optional external Sink.

package permission

import (
	"context"
	"sync"
	"time"
)

// maxTrailEntries caps the in-memory audit trail. Older entries are
// silently dropped; the external sink is the durable record.
const maxTrailEntries = 1000

// AuditEvent classifies an audit entry's outcome.
type AuditEvent string

// Audit event types.
const (
	EventGranted AuditEvent = "GRANTED"
	EventDenied  AuditEvent = "DENIED"
)

// AuditAction names the kind of check an audit entry records.
type AuditAction string

// Audit actions.
const (
	ActionToolAccess    AuditAction = "tool_access"
	ActionProjectAccess AuditAction = "project_access"
)

// AuditEntry records a single permission decision.
type AuditEntry struct {
	ID        string      // UUID v4
	Event     AuditEvent  // GRANTED or DENIED
	UserID    string      // who asked ("anonymous" when unauthenticated)
	Groups    []string    // the user's groups at decision time
	Action    AuditAction // tool_access or project_access
	Target    string      // tool name or project key
	Allowed   bool
	Reason    string // denial reason, empty when allowed
	Timestamp time.Time
}

// Sink receives audit entries for external persistence. Implementations
// must tolerate concurrent calls. Errors are logged by the caller and
// never affect the permission decision.
type Sink interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// auditTrail is a fixed-capacity ring of the most recent audit entries.
type auditTrail struct {
	mu      sync.Mutex
	entries [maxTrailEntries]AuditEntry
	start   int
	count   int
}

// add appends an entry, evicting the oldest when full.
func (t *auditTrail) add(entry AuditEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.count < maxTrailEntries {
		t.entries[(t.start+t.count)%maxTrailEntries] = entry
		t.count++
		return
	}
	t.entries[t.start] = entry
	t.start = (t.start + 1) % maxTrailEntries
}

// snapshot returns a copy of the trail, oldest first.
func (t *auditTrail) snapshot() []AuditEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]AuditEntry, t.count)
	for i := 0; i < t.count; i++ {
		out[i] = t.entries[(t.start+i)%maxTrailEntries]
	}
	return out
}

// len returns the number of retained entries.
func (t *auditTrail) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}
