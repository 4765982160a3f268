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

func TestCircuitBreaker_ExecuteSkipsCallWhenOpen(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	boom := errors.New("redis down")

	if err := b.Execute(func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected call error, got %v", err)
	}

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if called {
		t.Fatalf("call must be skipped while circuit is open")
	}
}

func TestCircuitBreaker_NilIsPassThrough(t *testing.T) {
	var b *CircuitBreaker
	if b.State() != CircuitStateClosed {
		t.Fatalf("nil breaker should report closed")
	}
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("nil breaker should allow calls: %v", err)
	}
	if NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false}) != nil {
		t.Fatalf("disabled config should yield nil breaker")
	}
}

func TestCircuitBreaker_StateChangeHook(t *testing.T) {
	var transitions []string
	b := NewCircuitBreaker(1, 5*time.Second, 1).OnStateChange(func(from, to CircuitState) {
		transitions = append(transitions, string(from)+"->"+string(to))
	})
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()
	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected trial request after open timeout: %v", err)
	}
	b.RecordSuccess()

	want := []string{"closed->open", "open->half_open", "half_open->closed"}
	if len(transitions) != len(want) {
		t.Fatalf("transitions=%v want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transitions=%v want %v", transitions, want)
		}
	}
}

func TestCircuitBreaker_HookMayReadState(t *testing.T) {
	var seen CircuitState
	var b *CircuitBreaker
	b = NewCircuitBreaker(1, time.Minute, 1).OnStateChange(func(_, _ CircuitState) {
		seen = b.State()
	})
	b.RecordFailure()
	if seen != CircuitStateOpen {
		t.Fatalf("hook saw state %q, want open", seen)
	}
}
