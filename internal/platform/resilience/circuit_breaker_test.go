package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	cb := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2025, 4, 20, 15, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }

	if err := cb.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	cb.RecordFailure()
	if state := cb.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	cb.RecordFailure()
	if state := cb.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := cb.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := cb.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := cb.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	cb.RecordSuccess()
	if state := cb.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	cb := NewCircuitBreaker(1, 5*time.Second, 1)

	now := time.Date(2025, 4, 20, 15, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	now = now.Add(6 * time.Second)
	if err := cb.Allow(); err != nil {
		t.Fatalf("expected probe to pass, got %v", err)
	}

	cb.RecordFailure()
	if state := cb.State(); state != CircuitStateOpen {
		t.Fatalf("expected reopen after failed probe, got %s", state)
	}
	if err := cb.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenProbeCap(t *testing.T) {
	cb := NewCircuitBreaker(1, 5*time.Second, 2)

	now := time.Date(2025, 4, 20, 15, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	now = now.Add(6 * time.Second)

	if err := cb.Allow(); err != nil {
		t.Fatalf("first probe: %v", err)
	}
	if err := cb.Allow(); err != nil {
		t.Fatalf("second probe: %v", err)
	}
	if err := cb.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected third probe rejected, got %v", err)
	}
}
