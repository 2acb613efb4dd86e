package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker trips after a run of consecutive failures and lets a
// bounded number of probe requests through once the open timeout elapses.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int

	state          CircuitState
	failures       int
	openedAt       time.Time
	probeInFlight  int
	probeSuccesses int
	now            func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	if openTimeout <= 0 {
		openTimeout = 15 * time.Second
	}
	if halfOpenMaxReq < 1 {
		halfOpenMaxReq = 1
	}

	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		openTimeout:      openTimeout,
		halfOpenMaxReq:   halfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// Allow reports whether a request may proceed. In the half-open state only
// halfOpenMaxReq probes run concurrently; the rest are rejected.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitStateOpen {
		if cb.now().Sub(cb.openedAt) < cb.openTimeout {
			return ErrCircuitOpen
		}
		cb.state = CircuitStateHalfOpen
		cb.probeInFlight = 0
		cb.probeSuccesses = 0
	}

	if cb.state == CircuitStateHalfOpen {
		if cb.probeInFlight >= cb.halfOpenMaxReq {
			return ErrCircuitOpen
		}
		cb.probeInFlight++
	}

	return nil
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitStateClosed:
		cb.failures = 0
	case CircuitStateHalfOpen:
		if cb.probeInFlight > 0 {
			cb.probeInFlight--
		}
		cb.probeSuccesses++
		if cb.probeSuccesses >= cb.halfOpenMaxReq && cb.probeInFlight == 0 {
			cb.reset()
		}
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitStateClosed:
		cb.failures++
		if cb.failures >= cb.failureThreshold {
			cb.trip()
		}
	case CircuitStateHalfOpen:
		if cb.probeInFlight > 0 {
			cb.probeInFlight--
		}
		cb.trip()
	case CircuitStateOpen:
		cb.openedAt = cb.now()
	}
}

// State reports the effective state: an open breaker whose timeout has
// elapsed is already half-open from the caller's point of view.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitStateOpen && cb.now().Sub(cb.openedAt) >= cb.openTimeout {
		return CircuitStateHalfOpen
	}

	return cb.state
}

func (cb *CircuitBreaker) reset() {
	cb.state = CircuitStateClosed
	cb.failures = 0
	cb.probeInFlight = 0
	cb.probeSuccesses = 0
	cb.openedAt = time.Time{}
}

func (cb *CircuitBreaker) trip() {
	cb.state = CircuitStateOpen
	cb.openedAt = cb.now()
	cb.probeInFlight = 0
	cb.probeSuccesses = 0
}
