// Package circuit provides a two-state circuit breaker for calls that have a
// usable fallback.
package circuit

import (
	"sync"
	"time"
)

type State int

const (
	// StateClosed means results come from the primary path.
	StateClosed State = iota
	// StateOpen means failed calls should be answered from a fallback.
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// StateChange reports a transition caused by the last recorded outcome.
// OpenFor is set on close and holds how long the circuit was open.
type StateChange struct {
	Opened  bool
	Closed  bool
	OpenFor time.Duration
}

// Breaker counts consecutive outcomes. It opens after failureThreshold
// failures in a row and closes after successThreshold successes in a row
// while open. It never rejects calls; the caller decides what open means.
type Breaker struct {
	name             string
	failureThreshold int
	successThreshold int
	now              func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
}

type Option func(*Breaker)

// WithFailureThreshold sets the consecutive failures needed to open. Default 5.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithSuccessThreshold sets the consecutive successes needed to close. Default 3.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Breaker) {
		if now != nil {
			b.now = now
		}
	}
}

func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		failureThreshold: 5,
		successThreshold: 3,
		now:              time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) IsOpen() bool { return b.State() == StateOpen }

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// RecordFailure reports whether the caller should answer from its fallback.
func (b *Breaker) RecordFailure() (useFallback bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.successes = 0
	b.failures++
	switch {
	case b.state == StateOpen:
		return true, StateChange{}
	case b.failures < b.failureThreshold:
		return false, StateChange{}
	}
	b.state = StateOpen
	b.openedAt = b.now()
	return true, StateChange{Opened: true}
}

// RecordSuccess reports whether the circuit is closed after this success.
func (b *Breaker) RecordSuccess() (closed bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	if b.state == StateClosed {
		return true, StateChange{}
	}
	b.successes++
	if b.successes < b.successThreshold {
		return false, StateChange{}
	}
	b.state = StateClosed
	b.successes = 0
	return true, StateChange{Closed: true, OpenFor: b.now().Sub(b.openedAt)}
}
