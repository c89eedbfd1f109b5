// Package feedback holds the transient status message shown after user
// actions. A message clears itself after a fixed delay. Clears are never
// cancelled: a clear scheduled for an older message may erase a newer one.
package feedback

import (
	"sync"
	"time"
)

// DefaultDelay is how long a message stays visible.
const DefaultDelay = 4 * time.Second

// Scheduler runs fn after d. time.AfterFunc satisfies it.
type Scheduler func(d time.Duration, fn func())

// Option configures a Slot.
type Option func(*Slot)

// WithDelay overrides the visibility delay.
func WithDelay(d time.Duration) Option {
	return func(s *Slot) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithScheduler replaces the timer implementation, mainly for tests.
func WithScheduler(schedule Scheduler) Option {
	return func(s *Slot) {
		if schedule != nil {
			s.schedule = schedule
		}
	}
}

// OnChange registers a callback invoked with every new message, including
// the empty message of a clear.
func OnChange(fn func(message string)) Option {
	return func(s *Slot) {
		s.onChange = fn
	}
}

// Slot is a single message slot. Timer callbacks fire on their own
// goroutine, so access is synchronised.
type Slot struct {
	mu       sync.Mutex
	message  string
	delay    time.Duration
	schedule Scheduler
	onChange func(string)
}

// New constructs a slot using time.AfterFunc.
func New(options ...Option) *Slot {
	s := &Slot{
		delay: DefaultDelay,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Set shows message and schedules its clear.
func (s *Slot) Set(message string) {
	s.update(message)
	s.schedule(s.delay, s.Clear)
}

// Clear empties the slot.
func (s *Slot) Clear() {
	s.update("")
}

// Message returns the current message.
func (s *Slot) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *Slot) update(message string) {
	s.mu.Lock()
	s.message = message
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(message)
	}
}
