package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/devaloi/newsboard/internal/config"
	"github.com/devaloi/newsboard/internal/domain"
	"github.com/devaloi/newsboard/internal/proxy"
	"github.com/devaloi/newsboard/internal/store"
)

func main() {
	cfg := config.Load()
	workers := flag.Int("workers", cfg.StressWorkers, "Number of concurrent proxies")
	ops := flag.Int("ops", cfg.StressOps, "Operations per proxy")
	backend := flag.String("backend", cfg.Backend, "Store backend (memory or sqlite)")
	roleName := flag.String("role", "", "Role for every proxy (default: rotate through all roles)")
	flag.Parse()
	cfg.Backend = *backend

	if err := validate(*workers, *ops); err != nil {
		log.Fatalf("flags: %v", err)
	}
	roles, err := rolesFor(*roleName)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownRole) {
			log.Fatalf("flags: %v (want one of %v)", err, domain.Roles())
		}
		log.Fatalf("flags: %v", err)
	}

	s, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer s.Close()

	log.Printf("Stress test: %d proxies, %d ops each, backend=%s", *workers, *ops, cfg.Backend)

	var (
		success   int64
		denied    int64
		notFound  int64
		other     int64
		hits      int64
		latencies []time.Duration
		latencyMu sync.Mutex
		wg        sync.WaitGroup
	)

	counter := proxy.TracerFunc(func(_ domain.Identity, _ proxy.Operation, ev proxy.Event, _ int) {
		if ev == proxy.CacheHit {
			atomic.AddInt64(&hits, 1)
		}
	})

	start := time.Now()

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			who := domain.Identity{Name: fmt.Sprintf("worker_%d", id), Role: roles[id%len(roles)]}
			p := proxy.New(who, s, proxy.WithTracer(counter))
			rng := rand.New(rand.NewSource(int64(id)))
			local := make([]time.Duration, 0, *ops)

			for j := 0; j < *ops; j++ {
				target := rng.Intn((*workers)*(*ops)/4+1) + 1
				opStart := time.Now()
				var resp domain.Response
				switch rng.Intn(4) {
				case 0:
					resp = p.Create(who.Name, fmt.Sprintf("post %d", j))
				case 1:
					resp = p.Read(target)
				case 2:
					resp = p.Update(target, fmt.Sprintf("edit %d by %s", j, who.Name))
				default:
					resp = p.Delete(target)
				}
				local = append(local, time.Since(opStart))

				switch {
				case resp.OK():
					atomic.AddInt64(&success, 1)
				case resp.Message == domain.MsgNotFound:
					atomic.AddInt64(&notFound, 1)
				case !proxy.Allowed(opFor(resp.Message), who.Role):
					atomic.AddInt64(&denied, 1)
				default:
					atomic.AddInt64(&other, 1)
				}
			}

			latencyMu.Lock()
			latencies = append(latencies, local...)
			latencyMu.Unlock()
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	fmt.Println("\n=== Stress Test Results ===")
	fmt.Printf("Duration:    %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("Success:     %d\n", success)
	fmt.Printf("Denied:      %d\n", denied)
	fmt.Printf("Not found:   %d\n", notFound)
	fmt.Printf("Other:       %d\n", other)
	fmt.Printf("Cache hits:  %d\n", hits)
	if len(latencies) > 0 {
		fmt.Printf("Latency p50: %s\n", percentile(latencies, 50))
		fmt.Printf("Latency p95: %s\n", percentile(latencies, 95))
		fmt.Printf("Latency p99: %s\n", percentile(latencies, 99))
	}
	total := success + denied + notFound + other
	fmt.Printf("Throughput:  %.0f ops/sec\n", float64(total)/elapsed.Seconds())
}

func validate(workers, ops int) error {
	if workers <= 0 {
		return fmt.Errorf("-workers must be positive, got %d", workers)
	}
	if ops <= 0 {
		return fmt.Errorf("-ops must be positive, got %d", ops)
	}
	return nil
}

// rolesFor returns the roles workers rotate through. An empty name means all.
func rolesFor(name string) ([]domain.Role, error) {
	if name == "" {
		return domain.Roles(), nil
	}
	r, err := domain.ParseRole(name)
	if err != nil {
		return nil, err
	}
	return []domain.Role{r}, nil
}

// opFor maps a denial message back to its operation.
func opFor(msg string) proxy.Operation {
	switch msg {
	case domain.MsgDenyAdd:
		return proxy.OpCreate
	case domain.MsgDenyEdit:
		return proxy.OpUpdate
	case domain.MsgDenyDelete:
		return proxy.OpDelete
	}
	return proxy.OpRead
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
