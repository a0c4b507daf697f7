// Package circuitbreaker guards calls to flaky downstreams. After too many
// consecutive failures the breaker opens and rejects calls outright; once the
// cooldown elapses a single trial call is let through to test recovery.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned when the breaker rejects a call without running it.
var ErrOpen = errors.New("circuit breaker is open")

type state int

const (
	stateClosed state = iota
	stateOpen
	stateHalfOpen
)

type Settings struct {
	Name             string
	FailureThreshold int           // consecutive failures before opening
	Cooldown         time.Duration // how long to stay open before retrying
}

type CircuitBreaker struct {
	name      string
	threshold int
	cooldown  time.Duration

	mu          sync.Mutex
	state       state
	failures    int
	lastFailure time.Time
}

func New(settings Settings) *CircuitBreaker {
	return &CircuitBreaker{
		name:      settings.Name,
		threshold: settings.FailureThreshold,
		cooldown:  settings.Cooldown,
		state:     stateClosed,
	}
}

// Execute runs fn unless the breaker is open. A success in the half-open
// state closes the breaker; any failure counts toward the threshold.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.state == stateOpen {
		if time.Since(cb.lastFailure) <= cb.cooldown {
			cb.mu.Unlock()
			return ErrOpen
		}
		cb.state = stateHalfOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailure = time.Now()
		if cb.failures >= cb.threshold {
			cb.state = stateOpen
		}
		return err
	}

	cb.state = stateClosed
	cb.failures = 0
	return nil
}
