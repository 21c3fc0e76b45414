package resilience

import (
	"context"
	"fmt"
	"sync"
)

// SingleFlight collapses concurrent loads of the same key into one call.
// Waiters stop waiting when their own context ends; the running call is not
// interrupted and its result still reaches the remaining waiters.
type SingleFlight struct {
	mu     sync.Mutex
	flying map[string]*flight
}

type flight struct {
	done chan struct{}
	val  any
	err  error
	dups int
}

// Do runs fn once per key at a time. shared reports whether the result came
// from a call started by another caller.
func (g *SingleFlight) Do(ctx context.Context, key string, fn func() (any, error)) (val any, err error, shared bool) {
	g.mu.Lock()
	if g.flying == nil {
		g.flying = make(map[string]*flight)
	}
	if f, ok := g.flying[key]; ok {
		f.dups++
		g.mu.Unlock()
		select {
		case <-f.done:
			return f.val, f.err, true
		case <-ctx.Done():
			return nil, ctx.Err(), true
		}
	}

	f := &flight{done: make(chan struct{})}
	g.flying[key] = f
	g.mu.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			f.err = fmt.Errorf("singleflight %q panicked: %v", key, rec)
			val, err = nil, f.err
		}
		g.mu.Lock()
		delete(g.flying, key)
		g.mu.Unlock()
		close(f.done)
	}()

	f.val, f.err = fn()
	return f.val, f.err, false
}
