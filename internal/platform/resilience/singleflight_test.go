package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleFlight_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var loads atomic.Int32

	const callers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := g.Do(context.Background(), "lookuptable.php?l=4328&s=2023-2024", func() (any, error) {
				loads.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "table", nil
			})
			if err != nil || val != "table" {
				t.Errorf("unexpected result %v, %v", val, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected one load, got %d", got)
	}
	g.mu.Lock()
	assert.Empty(t, g.flying)
	g.mu.Unlock()
}

func TestSingleFlight_WaiterHonoursOwnContext(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	release := make(chan struct{})
	started := make(chan struct{})
	leaderDone := make(chan struct{})

	go func() {
		defer close(leaderDone)
		val, err, shared := g.Do(context.Background(), "k", func() (any, error) {
			close(started)
			<-release
			return "late", nil
		})
		assert.Equal(t, "late", val)
		assert.NoError(t, err)
		assert.False(t, shared)
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err, shared := g.Do(ctx, "k", func() (any, error) { return "never", nil })
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, shared)

	close(release)
	<-leaderDone
}

func TestSingleFlight_PanicBecomesError(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	_, err, _ := g.Do(context.Background(), "k", func() (any, error) {
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	val, err, _ := g.Do(context.Background(), "k", func() (any, error) { return 1, nil })
	require.NoError(t, err)
	assert.Equal(t, 1, val)

	_, err, _ = g.Do(context.Background(), "k", func() (any, error) { return nil, errors.New("upstream down") })
	assert.EqualError(t, err, "upstream down")
}
