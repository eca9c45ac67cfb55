package testutil

import (
	"sync"

	"github.com/devaloi/newsboard/internal/domain"
	"github.com/devaloi/newsboard/internal/proxy"
	"github.com/devaloi/newsboard/internal/store"
)

// CallCounts tallies store calls per operation.
type CallCounts struct {
	Create int
	Read   int
	Update int
	Delete int
}

// Total returns the number of calls of any kind.
func (c CallCounts) Total() int {
	return c.Create + c.Read + c.Update + c.Delete
}

// CountingStore wraps a store.Store and counts calls reaching it.
type CountingStore struct {
	store.Store
	mu     sync.Mutex
	counts CallCounts
}

// NewCountingStore wraps s. A nil s wraps a fresh memory store.
func NewCountingStore(s store.Store) *CountingStore {
	if s == nil {
		s = store.NewMemory()
	}
	return &CountingStore{Store: s}
}

// Create counts and delegates.
func (c *CountingStore) Create(title, content string) domain.Response {
	c.mu.Lock()
	c.counts.Create++
	c.mu.Unlock()
	return c.Store.Create(title, content)
}

// Read counts and delegates.
func (c *CountingStore) Read(id int) domain.Response {
	c.mu.Lock()
	c.counts.Read++
	c.mu.Unlock()
	return c.Store.Read(id)
}

// Update counts and delegates.
func (c *CountingStore) Update(id int, content string) domain.Response {
	c.mu.Lock()
	c.counts.Update++
	c.mu.Unlock()
	return c.Store.Update(id, content)
}

// Delete counts and delegates.
func (c *CountingStore) Delete(id int) domain.Response {
	c.mu.Lock()
	c.counts.Delete++
	c.mu.Unlock()
	return c.Store.Delete(id)
}

// Counts returns a snapshot of the call counts.
func (c *CountingStore) Counts() CallCounts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts
}

// TraceRecord is one event captured by RecordingTracer.
type TraceRecord struct {
	Who   domain.Identity
	Op    proxy.Operation
	Event proxy.Event
	ID    int
}

// RecordingTracer implements proxy.Tracer by keeping every event.
type RecordingTracer struct {
	mu      sync.Mutex
	records []TraceRecord
}

// Trace records the event.
func (r *RecordingTracer) Trace(who domain.Identity, op proxy.Operation, ev proxy.Event, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, TraceRecord{Who: who, Op: op, Event: ev, ID: id})
}

// Records returns a copy of all recorded events.
func (r *RecordingTracer) Records() []TraceRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]TraceRecord, len(r.records))
	copy(cp, r.records)
	return cp
}

// Events returns just the event kinds, in order.
func (r *RecordingTracer) Events() []proxy.Event {
	recs := r.Records()
	evs := make([]proxy.Event, len(recs))
	for i, rec := range recs {
		evs[i] = rec.Event
	}
	return evs
}
