package countdown

import (
	"fmt"
	"sync"
	"time"
)

// Timer counts down once per interval from a starting value to zero.
// A Timer is safe for concurrent use. The zero value is not usable;
// construct with [NewTimer].
type Timer struct {
	mu        sync.Mutex
	remaining int
	active    bool
	closed    bool
	stop      chan struct{} // cancels the current run; nil when idle
	interval  time.Duration
	wg        sync.WaitGroup
}

// NewTimer creates an inactive Timer ticking at 1 Hz.
func NewTimer() *Timer {
	return NewTimerInterval(time.Second)
}

// NewTimerInterval creates an inactive Timer with a custom tick interval.
// Intervals at or below zero fall back to one second.
func NewTimerInterval(interval time.Duration) *Timer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Timer{interval: interval}
}

// Start begins or restarts the countdown from seconds. Starting while a run
// is active cancels it and restarts from the new value. Start on a closed
// timer or with seconds <= 0 is a no-op.
func (t *Timer) Start(seconds int) {
	if seconds <= 0 {
		return
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if t.stop != nil {
		close(t.stop)
	}
	stop := make(chan struct{})
	t.stop = stop
	t.remaining = seconds
	t.active = true
	t.wg.Add(1)
	t.mu.Unlock()

	go t.run(stop)
}

func (t *Timer) run(stop chan struct{}) {
	defer t.wg.Done()
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			// A restart may have superseded this run between the tick
			// firing and the lock being taken.
			if t.stop != stop {
				t.mu.Unlock()
				return
			}
			t.remaining--
			if t.remaining <= 0 {
				t.remaining = 0
				t.active = false
				t.stop = nil
				t.mu.Unlock()
				return
			}
			t.mu.Unlock()
		}
	}
}

// Remaining returns the seconds left, zero when inactive.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Active reports whether a countdown is in progress.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Text returns the display string for the current state: "Resend in 42s"
// while active, "" otherwise.
func (t *Timer) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return ""
	}
	return fmt.Sprintf("Resend in %ds", t.remaining)
}

// Close cancels any running countdown and marks the timer unusable.
// Close is idempotent and blocks until the tick goroutine has exited.
func (t *Timer) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		t.wg.Wait()
		return
	}
	t.closed = true
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.remaining = 0
	t.active = false
	t.mu.Unlock()
	t.wg.Wait()
}
