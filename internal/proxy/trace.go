package proxy

import (
	"log"

	"github.com/devaloi/newsboard/internal/domain"
)

// Event is a cache or access decision observed by a Tracer.
type Event int

// Trace events.
const (
	CacheHit Event = iota
	CacheMiss
	CacheInvalidated
	AccessDenied
)

func (e Event) String() string {
	switch e {
	case CacheHit:
		return "cache hit"
	case CacheMiss:
		return "cache miss"
	case CacheInvalidated:
		return "cache invalidated"
	case AccessDenied:
		return "access denied"
	}
	return "unknown"
}

// Tracer observes proxy decisions. It is called after the proxy releases its
// lock, so it may call back into the proxy.
type Tracer interface {
	Trace(who domain.Identity, op Operation, ev Event, id int)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(who domain.Identity, op Operation, ev Event, id int)

// Trace calls f.
func (f TracerFunc) Trace(who domain.Identity, op Operation, ev Event, id int) {
	f(who, op, ev, id)
}

// LogTracer writes every event to the standard logger.
type LogTracer struct{}

// Trace logs the event.
func (LogTracer) Trace(who domain.Identity, op Operation, ev Event, id int) {
	if op == OpCreate {
		log.Printf("%s (%s) %s: %s", who.Name, who.Role, op, ev)
		return
	}
	log.Printf("%s (%s) %s id=%d: %s", who.Name, who.Role, op, id, ev)
}
