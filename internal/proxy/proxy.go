package proxy

import (
	"sync"

	"github.com/devaloi/newsboard/internal/domain"
	"github.com/devaloi/newsboard/internal/store"
)

// Proxy gates a shared store by the caller's role and caches read results.
//
// The cache belongs to this instance alone. A mutation made through another
// proxy over the same store is not seen here, so this proxy may keep serving
// the old read for that id until it mutates the id itself or ClearCache is
// called.
type Proxy struct {
	who    domain.Identity
	store  store.Store
	tracer Tracer

	mu    sync.Mutex
	cache map[int]domain.Response
}

var _ store.Store = (*Proxy)(nil)

// Option configures a Proxy.
type Option func(*Proxy)

// WithTracer installs a tracer for cache and access events.
func WithTracer(t Tracer) Option {
	return func(p *Proxy) { p.tracer = t }
}

// New binds a proxy to an identity and a store it does not own.
func New(who domain.Identity, s store.Store, opts ...Option) *Proxy {
	p := &Proxy{
		who:   who,
		store: s,
		cache: make(map[int]domain.Response),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Identity returns the identity the proxy acts for.
func (p *Proxy) Identity() domain.Identity {
	return p.who
}

// Create adds a message. New ids were never handed out before, so the cache
// holds nothing to invalidate.
func (p *Proxy) Create(title, content string) domain.Response {
	if resp, ok := p.authorize(OpCreate, 0); !ok {
		return resp
	}
	return p.store.Create(title, content)
}

// Read serves id from the cache, or reads through to the store and caches the
// result. Not-found results are cached too; storage failures are not, so a
// retry reaches the store again.
func (p *Proxy) Read(id int) domain.Response {
	resp, ev := p.read(id)
	p.trace(OpRead, ev, id)
	return resp
}

func (p *Proxy) read(id int) (domain.Response, Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if resp, ok := p.cache[id]; ok {
		return resp, CacheHit
	}
	resp := p.store.Read(id)
	if resp.Message != domain.MsgStorage {
		p.cache[id] = resp
	}
	return resp, CacheMiss
}

// Update changes a message's content. The cached read is dropped before the
// store is called and is repopulated by the next Read.
func (p *Proxy) Update(id int, content string) domain.Response {
	if resp, ok := p.authorize(OpUpdate, id); !ok {
		return resp
	}
	return p.mutate(OpUpdate, id, func() domain.Response {
		return p.store.Update(id, content)
	})
}

// Delete removes a message, dropping its cached read first.
func (p *Proxy) Delete(id int) domain.Response {
	if resp, ok := p.authorize(OpDelete, id); !ok {
		return resp
	}
	return p.mutate(OpDelete, id, func() domain.Response {
		return p.store.Delete(id)
	})
}

// mutate invalidates id and runs write under mu, tracing once mu is released.
func (p *Proxy) mutate(op Operation, id int, write func() domain.Response) domain.Response {
	p.mu.Lock()
	_, cached := p.cache[id]
	delete(p.cache, id)
	resp := write()
	p.mu.Unlock()

	if cached {
		p.trace(op, CacheInvalidated, id)
	}
	return resp
}

// Close is a no-op; the store is shared and closed by its owner.
func (p *Proxy) Close() error { return nil }

// CacheLen returns the number of cached reads.
func (p *Proxy) CacheLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cache)
}

// ClearCache drops every cached read.
func (p *Proxy) ClearCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.cache)
}

func (p *Proxy) authorize(op Operation, id int) (domain.Response, bool) {
	resp, ok := check(op, p.who.Role)
	if !ok {
		p.trace(op, AccessDenied, id)
	}
	return resp, ok
}

func (p *Proxy) trace(op Operation, ev Event, id int) {
	if p.tracer != nil {
		p.tracer.Trace(p.who, op, ev, id)
	}
}
