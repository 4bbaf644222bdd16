// Package periodic runs a single action on a fixed interval.
//
// A Timer fires its action once as soon as it is started, then once per
// interval until it is stopped. The action runs on the timer's own goroutine,
// so Start and Stop never wait on it.
package periodic

import (
	"sync"
	"sync/atomic"
	"time"
)

// Action is the work performed on every tick.
type Action func()

// Timer is a restartable periodic scheduler. The zero value is not usable,
// create one with New.
type Timer struct {
	mu      sync.Mutex
	current *schedule
	closed  bool

	// loops counts schedule goroutines, including halted ones whose action
	// is still running.
	loops sync.WaitGroup
}

// schedule is one Start..Stop lifetime of the timer goroutine.
type schedule struct {
	ticker  *time.Ticker
	action  Action
	stopped atomic.Bool
	stopCh  chan struct{}
	once    sync.Once
}

// New returns an idle Timer.
func New() *Timer {
	return &Timer{}
}

// Start invokes action immediately and then every interval until Stop or
// Close is called. Calling Start on a running Timer replaces the previous
// schedule.
func (t *Timer) Start(interval time.Duration, action Action) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	if action == nil {
		return ErrNilAction
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	if t.current != nil {
		t.current.halt()
	}

	s := &schedule{
		ticker: time.NewTicker(interval),
		action: action,
		stopCh: make(chan struct{}),
	}
	t.current = s
	t.loops.Go(s.loop)

	return nil
}

// Stop prevents any tick that has not yet begun. A tick already in progress
// is allowed to finish. Stop is a no-op on an idle Timer.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return
	}
	t.current.halt()
	t.current = nil
}

// Close stops the Timer and waits for every schedule goroutine to exit,
// including a tick still in progress from a schedule that was already
// stopped. After Close, Start returns ErrClosed. Close must not be called from
// inside the action.
func (t *Timer) Close() error {
	t.mu.Lock()
	if t.current != nil {
		t.current.halt()
		t.current = nil
	}
	t.closed = true
	t.mu.Unlock()

	t.loops.Wait()
	return nil
}

// Running reports whether a schedule is active.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current != nil
}

func (s *schedule) halt() {
	s.once.Do(func() {
		s.stopped.Store(true)
		close(s.stopCh)
	})
}

func (s *schedule) loop() {
	defer s.ticker.Stop()

	s.fire()
	for {
		select {
		case <-s.stopCh:
			return
		case <-s.ticker.C:
			s.fire()
		}
	}
}

// fire runs the action unless the schedule was halted. select picks randomly
// between ready cases, so the flag is the real stop gate.
func (s *schedule) fire() {
	if s.stopped.Load() {
		return
	}
	s.action()
}
