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

// StateChangeFunc is called after the breaker moves between states, outside the lock.
type StateChangeFunc func(from, to CircuitState)

// CircuitBreaker trips after consecutive failures and lets a limited number of trial requests
// through once the open timeout has passed. All methods are safe on a nil receiver.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int
	onChange         StateChangeFunc

	state               CircuitState
	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
	halfOpenSuccesses   int
	now                 func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{
		FailureThreshold: failureThreshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	})

	return &CircuitBreaker{
		failureThreshold: cfg.FailureThreshold,
		openTimeout:      cfg.OpenTimeout,
		halfOpenMaxReq:   cfg.HalfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// OnStateChange registers fn for state transitions. Call it before the breaker is shared.
func (b *CircuitBreaker) OnStateChange(fn StateChangeFunc) *CircuitBreaker {
	if b != nil {
		b.onChange = fn
	}
	return b
}

// Execute runs fn when the breaker allows it and records the outcome.
func (b *CircuitBreaker) Execute(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		b.RecordFailure()
		return err
	}
	b.RecordSuccess()
	return nil
}

func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}

	var err error
	b.update(func() {
		if b.state == CircuitStateOpen {
			if b.now().Sub(b.openedAt) < b.openTimeout {
				err = ErrCircuitOpen
				return
			}
			b.toHalfOpen()
		}
		if b.state == CircuitStateHalfOpen {
			if b.halfOpenInFlight >= b.halfOpenMaxReq {
				err = ErrCircuitOpen
				return
			}
			b.halfOpenInFlight++
		}
	})
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	if b == nil {
		return
	}

	b.update(func() {
		switch b.state {
		case CircuitStateClosed:
			b.consecutiveFailures = 0
		case CircuitStateHalfOpen:
			b.releaseTrial()
			b.halfOpenSuccesses++
			if b.halfOpenSuccesses >= b.halfOpenMaxReq && b.halfOpenInFlight == 0 {
				b.toClosed()
			}
		}
	})
}

func (b *CircuitBreaker) RecordFailure() {
	if b == nil {
		return
	}

	b.update(func() {
		switch b.state {
		case CircuitStateClosed:
			b.consecutiveFailures++
			if b.consecutiveFailures >= b.failureThreshold {
				b.toOpen()
			}
		case CircuitStateHalfOpen:
			b.releaseTrial()
			b.toOpen()
		case CircuitStateOpen:
			b.openedAt = b.now()
		}
	})
}

// State reports half_open once the open timeout has elapsed, even before the next trial request.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

// update runs mutate under the lock and fires the state hook after unlocking.
func (b *CircuitBreaker) update(mutate func()) {
	b.mu.Lock()
	from := b.state
	mutate()
	to := b.state
	hook := b.onChange
	b.mu.Unlock()

	if hook != nil && from != to {
		hook(from, to)
	}
}

func (b *CircuitBreaker) releaseTrial() {
	if b.halfOpenInFlight > 0 {
		b.halfOpenInFlight--
	}
}

func (b *CircuitBreaker) toClosed() {
	b.state = CircuitStateClosed
	b.consecutiveFailures = 0
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
	b.openedAt = time.Time{}
}

func (b *CircuitBreaker) toOpen() {
	b.state = CircuitStateOpen
	b.openedAt = b.now()
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
}

func (b *CircuitBreaker) toHalfOpen() {
	b.state = CircuitStateHalfOpen
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
}
