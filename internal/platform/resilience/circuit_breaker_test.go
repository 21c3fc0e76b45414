package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open trial request to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open trial request, got %s", state)
	}
}

func TestCircuitBreaker_NotifiesListenerOnTransitions(t *testing.T) {
	t.Parallel()

	type transition struct {
		from CircuitState
		to   CircuitState
	}
	var seen []transition
	b := NewNamedCircuitBreaker("thesportsdb", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Second,
		HalfOpenMaxReq:   1,
	}, func(name string, from, to CircuitState) {
		if name != "thesportsdb" {
			t.Errorf("unexpected breaker name %q", name)
		}
		seen = append(seen, transition{from: from, to: to})
	})

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open trial request, got %v", err)
	}
	b.RecordSuccess()

	want := []transition{
		{CircuitStateClosed, CircuitStateOpen},
		{CircuitStateOpen, CircuitStateHalfOpen},
		{CircuitStateHalfOpen, CircuitStateClosed},
	}
	if len(seen) != len(want) {
		t.Fatalf("expected %d transitions, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transition %d: want %v got %v", i, want[i], seen[i])
		}
	}
}

func TestCircuitBreakerConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	got := CircuitBreakerConfig{Enabled: false, OpenTimeout: time.Second}.WithDefaults()
	if got.Enabled {
		t.Fatalf("expected Enabled to be kept false")
	}
	if got.FailureThreshold != 5 || got.HalfOpenMaxReq != 2 {
		t.Fatalf("expected default thresholds, got %+v", got)
	}
	if got.OpenTimeout != time.Second {
		t.Fatalf("expected explicit open timeout kept, got %s", got.OpenTimeout)
	}
}

func TestCircuitBreaker_AbortKeepsHalfOpen(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(1, time.Second, 1)
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open trial to pass, got %v", err)
	}

	b.RecordAbort()
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open after abort, got %s", state)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("expected aborted slot to be released, got %v", err)
	}
	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after real success, got %s", state)
	}
}
