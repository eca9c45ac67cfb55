package proxy_test

import (
	"slices"
	"sync"
	"testing"

	"github.com/devaloi/newsboard/internal/domain"
	"github.com/devaloi/newsboard/internal/proxy"
	"github.com/devaloi/newsboard/internal/store"
	"github.com/devaloi/newsboard/internal/testutil"
)

var (
	guest     = domain.Identity{Name: "Norman", Role: domain.Guest}
	user      = domain.Identity{Name: "Bartek", Role: domain.User}
	moderator = domain.Identity{Name: "Inga", Role: domain.Moderator}
	admin     = domain.Identity{Name: "Dawid", Role: domain.Admin}
)

func TestCreateByPrivilegedRoles(t *testing.T) {
	t.Parallel()
	for _, who := range []domain.Identity{user, moderator, admin} {
		mem := store.NewMemory()
		s := testutil.NewCountingStore(mem)
		p := proxy.New(who, s)

		for want := 1; want <= 2; want++ {
			resp := p.Create("title", "content")
			if resp != (domain.Response{Status: domain.StatusSuccess, Message: domain.MsgAdded, ID: want}) {
				t.Errorf("%s create #%d: got %+v", who.Role, want, resp)
			}
		}
		if got := s.Counts().Create; got != 2 {
			t.Errorf("%s: expected 2 store creates, got %d", who.Role, got)
		}
		if mem.Len() != 2 {
			t.Errorf("%s: expected 2 messages, got %d", who.Role, mem.Len())
		}
	}
}

func TestGuestCreateDenied(t *testing.T) {
	t.Parallel()
	mem := store.NewMemory()
	s := testutil.NewCountingStore(mem)
	p := proxy.New(guest, s)

	resp := p.Create("I like pancakes", "Pancakes are yummy :)")
	if resp != domain.Failure(domain.MsgDenyAdd) {
		t.Errorf("got %+v", resp)
	}
	if s.Counts().Total() != 0 {
		t.Errorf("expected no store calls, got %+v", s.Counts())
	}
	if mem.Len() != 0 {
		t.Errorf("expected empty store, got %d messages", mem.Len())
	}
}

func TestReadCachesNotFound(t *testing.T) {
	t.Parallel()
	for _, who := range []domain.Identity{guest, user, moderator, admin} {
		s := testutil.NewCountingStore(nil)
		p := proxy.New(who, s)

		first := p.Read(1)
		second := p.Read(1)
		if first != domain.Failure(domain.MsgNotFound) || second != first {
			t.Errorf("%s: got %+v then %+v", who.Role, first, second)
		}
		if got := s.Counts().Read; got != 1 {
			t.Errorf("%s: expected 1 store read, got %d", who.Role, got)
		}
	}
}

func TestReadHitSkipsStore(t *testing.T) {
	t.Parallel()
	s := testutil.NewCountingStore(nil)
	s.Create("T", "C")
	p := proxy.New(guest, s)

	for i := 0; i < 3; i++ {
		if resp := p.Read(1); resp != domain.Success("T: C") {
			t.Fatalf("read #%d: got %+v", i, resp)
		}
	}
	if got := s.Counts().Read; got != 1 {
		t.Errorf("expected 1 store read, got %d", got)
	}
	if p.CacheLen() != 1 {
		t.Errorf("expected 1 cached entry, got %d", p.CacheLen())
	}
}

func TestUpdateDeniedLeavesCacheAndStore(t *testing.T) {
	t.Parallel()
	s := testutil.NewCountingStore(nil)
	s.Create("T", "C")
	p := proxy.New(user, s)
	p.Read(1)
	before := s.Counts()

	if resp := p.Update(1, "C2"); resp != domain.Failure(domain.MsgDenyEdit) {
		t.Errorf("got %+v", resp)
	}
	if s.Counts() != before {
		t.Errorf("expected no store calls, got %+v after %+v", s.Counts(), before)
	}
	if p.CacheLen() != 1 {
		t.Errorf("expected cache untouched, got %d entries", p.CacheLen())
	}
	if resp := s.Read(1); resp.Message != "T: C" {
		t.Errorf("content changed: %q", resp.Message)
	}
}

func TestUpdateInvalidatesThenReadRepopulates(t *testing.T) {
	t.Parallel()
	s := testutil.NewCountingStore(nil)
	s.Create("T", "C")
	p := proxy.New(moderator, s)

	if resp := p.Read(1); resp.Message != "T: C" {
		t.Fatalf("initial read: got %q", resp.Message)
	}
	if resp := p.Update(1, "C2"); resp != domain.Success(domain.MsgEdited) {
		t.Fatalf("update: got %+v", resp)
	}
	if p.CacheLen() != 0 {
		t.Errorf("expected update to invalidate without repopulating, got %d entries", p.CacheLen())
	}
	if resp := p.Read(1); resp.Message != "T: C2" {
		t.Errorf("read after update: got %q", resp.Message)
	}
	if got := s.Counts().Read; got != 2 {
		t.Errorf("expected 2 store reads, got %d", got)
	}
}

func TestUpdateMissingReportsNotFound(t *testing.T) {
	t.Parallel()
	p := proxy.New(admin, store.NewMemory())
	if resp := p.Update(7, "x"); resp != domain.Failure(domain.MsgNotFound) {
		t.Errorf("got %+v", resp)
	}
}

func TestDeleteByAdmin(t *testing.T) {
	t.Parallel()
	s := testutil.NewCountingStore(nil)
	s.Create("T", "C")
	p := proxy.New(admin, s)
	p.Read(1)

	if resp := p.Delete(1); resp != domain.Success(domain.MsgDeleted) {
		t.Fatalf("delete: got %+v", resp)
	}
	if resp := p.Read(1); resp != domain.Failure(domain.MsgNotFound) {
		t.Errorf("read after delete: got %+v", resp)
	}
	if resp := p.Delete(1); resp != domain.Failure(domain.MsgNotFound) {
		t.Errorf("repeated delete: got %+v", resp)
	}
}

func TestDeleteDeniedBelowAdmin(t *testing.T) {
	t.Parallel()
	for _, who := range []domain.Identity{guest, user, moderator} {
		s := testutil.NewCountingStore(nil)
		s.Create("T", "C")
		p := proxy.New(who, s)

		if resp := p.Delete(1); resp != domain.Failure(domain.MsgDenyDelete) {
			t.Errorf("%s: got %+v", who.Role, resp)
		}
		if got := s.Counts().Delete; got != 0 {
			t.Errorf("%s: expected no store deletes, got %d", who.Role, got)
		}
	}
}

func TestCachesAreNotShared(t *testing.T) {
	t.Parallel()
	s := testutil.NewCountingStore(nil)
	s.Create("T", "C")
	reader := proxy.New(guest, s)
	editor := proxy.New(moderator, s)

	reader.Read(1)
	editor.Update(1, "C2")

	// The reader never mutated id 1, so it keeps its old entry.
	if resp := reader.Read(1); resp.Message != "T: C" {
		t.Errorf("expected stale read through other proxy, got %q", resp.Message)
	}
	if resp := editor.Read(1); resp.Message != "T: C2" {
		t.Errorf("editor read: got %q", resp.Message)
	}

	reader.ClearCache()
	if reader.CacheLen() != 0 {
		t.Errorf("expected empty cache after clear, got %d", reader.CacheLen())
	}
	if resp := reader.Read(1); resp.Message != "T: C2" {
		t.Errorf("read after clear: got %q", resp.Message)
	}
}

func TestTracerEvents(t *testing.T) {
	t.Parallel()
	rec := &testutil.RecordingTracer{}
	s := store.NewMemory()
	s.Create("T", "C")
	p := proxy.New(moderator, s, proxy.WithTracer(rec))

	p.Read(1)
	p.Read(1)
	p.Update(1, "C2")
	p.Update(1, "C3")
	p.Delete(1)

	want := []proxy.Event{
		proxy.CacheMiss,
		proxy.CacheHit,
		proxy.CacheInvalidated,
		proxy.AccessDenied,
	}
	if got := rec.Events(); !slices.Equal(got, want) {
		t.Errorf("events: got %v, want %v", got, want)
	}
	last := rec.Records()[3]
	if last.Op != proxy.OpDelete || last.Who != moderator || last.ID != 1 {
		t.Errorf("denial record: got %+v", last)
	}
}

func TestTracerFunc(t *testing.T) {
	t.Parallel()
	var hits int
	tr := proxy.TracerFunc(func(_ domain.Identity, _ proxy.Operation, ev proxy.Event, _ int) {
		if ev == proxy.CacheHit {
			hits++
		}
	})
	p := proxy.New(guest, store.NewMemory(), proxy.WithTracer(tr))
	p.Read(5)
	p.Read(5)
	if hits != 1 {
		t.Errorf("expected 1 hit, got %d", hits)
	}
	if p.Identity() != guest {
		t.Errorf("identity: got %+v", p.Identity())
	}
}

func TestConcurrentUseOfOneProxy(t *testing.T) {
	t.Parallel()
	s := testutil.NewCountingStore(nil)
	p := proxy.New(admin, s)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				resp := p.Create("t", "c")
				p.Read(resp.ID)
				p.Update(resp.ID, "c2")
				p.Read(resp.ID)
				if j%2 == 0 {
					p.Delete(resp.ID)
				}
			}
		}()
	}
	wg.Wait()

	if got := s.Counts().Create; got != 400 {
		t.Errorf("expected 400 creates, got %d", got)
	}
	if got := s.Counts().Read; got != 800 {
		t.Errorf("expected every read to miss after its own update, got %d store reads", got)
	}
}

func TestReadDoesNotCacheStorageFailure(t *testing.T) {
	t.Parallel()
	db, err := store.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	db.Close()
	s := testutil.NewCountingStore(db)
	p := proxy.New(guest, s)

	for i := 1; i <= 2; i++ {
		if resp := p.Read(1); resp != domain.Failure(domain.MsgStorage) {
			t.Fatalf("read #%d: got %+v", i, resp)
		}
		if got := s.Counts().Read; got != i {
			t.Errorf("read #%d: expected %d store reads, got %d", i, i, got)
		}
	}
	if p.CacheLen() != 0 {
		t.Errorf("expected storage failure to stay out of the cache, got %d entries", p.CacheLen())
	}
}

func TestTracerMayCallBackIntoProxy(t *testing.T) {
	t.Parallel()
	s := store.NewMemory()
	s.Create("T", "C")

	var p *proxy.Proxy
	var sizes []int
	tr := proxy.TracerFunc(func(_ domain.Identity, _ proxy.Operation, _ proxy.Event, _ int) {
		sizes = append(sizes, p.CacheLen())
	})
	p = proxy.New(admin, s, proxy.WithTracer(tr))

	p.Read(1)
	p.Read(1)
	p.Update(1, "C2")
	p.Delete(1)

	want := []int{1, 1, 0}
	if !slices.Equal(sizes, want) {
		t.Errorf("cache sizes seen by tracer: got %v, want %v", sizes, want)
	}
}
