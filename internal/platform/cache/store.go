package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/riskibarqy/rankks/internal/platform/resilience"
)

// DefaultMaxEntries bounds a Store unless WithMaxEntries says otherwise.
const DefaultMaxEntries = 10000

// Loader produces the value for a missing or expired key.
type Loader func(context.Context) (any, error)

// Backend is the read-through contract shared by the memory and redis stores.
// Loader errors are returned as-is and never cached. The loader ignores the
// caller's cancellation; its result is shared by every waiter on the key.
type Backend interface {
	GetOrLoad(ctx context.Context, key string, loader Loader) (any, error)
}

// Observer receives hit/miss notifications for metrics.
type Observer interface {
	CacheLookup(backend string, hit bool)
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is an in-process TTL cache holding at most maxEntries keys. Concurrent
// loads of the same key are collapsed into one loader call.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	flight     resilience.SingleFlight
	now        func() time.Time
	observer   Observer
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
}

// WithObserver attaches a hit/miss observer and returns the store.
func (s *Store) WithObserver(observer Observer) *Store {
	s.observer = observer
	return s
}

// WithMaxEntries caps the number of cached keys; n <= 0 keeps the default.
func (s *Store) WithMaxEntries(n int) *Store {
	if n > 0 {
		s.maxEntries = n
	}
	return s
}

// StartSweeper drops expired entries every interval until stop is called.
func (s *Store) StartSweeper(interval time.Duration) (stop func()) {
	if interval <= 0 || s.ttl <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	var once sync.Once
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.mu.Lock()
				s.sweepLocked(s.now())
				s.mu.Unlock()
			}
		}
	}()
	return func() { once.Do(func() { close(done) }) }
}

func (s *Store) GetOrLoad(ctx context.Context, key string, loader Loader) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.get(key); ok {
		s.observe(true)
		return value, nil
	}
	s.observe(false)

	loadCtx := context.WithoutCancel(ctx)
	value, err, _ := s.flight.Do(ctx, key, func() (any, error) {
		if cached, ok := s.get(key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(loadCtx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.set(key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Store) get(key string) (any, bool) {
	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(e, now) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && s.expired(current, now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *Store) set(key string, value any) {
	now := s.now()
	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxEntries {
		s.sweepLocked(now)
		if len(s.entries) >= s.maxEntries {
			s.evictSoonestLocked()
		}
	}
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
}

func (s *Store) expired(e entry, now time.Time) bool {
	return s.ttl > 0 && !e.expiresAt.After(now)
}

func (s *Store) sweepLocked(now time.Time) {
	for key, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, key)
		}
	}
}

// evictSoonestLocked drops a tenth of the entries, those closest to expiry.
func (s *Store) evictSoonestLocked() {
	type keyExpiry struct {
		key       string
		expiresAt time.Time
	}
	all := make([]keyExpiry, 0, len(s.entries))
	for key, e := range s.entries {
		all = append(all, keyExpiry{key: key, expiresAt: e.expiresAt})
	}
	slices.SortFunc(all, func(a, b keyExpiry) int { return a.expiresAt.Compare(b.expiresAt) })

	n := max(s.maxEntries/10, 1)
	for _, item := range all[:min(n, len(all))] {
		delete(s.entries, item.key)
	}
}

func (s *Store) observe(hit bool) {
	if s.observer != nil {
		s.observer.CacheLookup("memory", hit)
	}
}
