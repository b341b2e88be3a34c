package countdown

import (
	"testing"
	"time"
)

func waitInactive(t *testing.T, timer *Timer, within time.Duration) {
	t.Helper()
	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		if !timer.Active() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timer still active after %v", within)
}

func TestStartCountsDownToZero(t *testing.T) {
	timer := NewTimerInterval(2 * time.Millisecond)
	defer timer.Close()

	timer.Start(3)
	if !timer.Active() {
		t.Fatal("expected active immediately after Start")
	}
	if got := timer.Remaining(); got != 3 {
		t.Fatalf("remaining = %d, want 3", got)
	}

	waitInactive(t, timer, time.Second)
	if got := timer.Remaining(); got != 0 {
		t.Fatalf("remaining after completion = %d, want 0", got)
	}
	if timer.Text() != "" {
		t.Fatalf("text after completion = %q, want empty", timer.Text())
	}
}

func TestRestartWhileActive(t *testing.T) {
	timer := NewTimerInterval(50 * time.Millisecond)
	defer timer.Close()

	timer.Start(5)
	timer.Start(9)

	if got := timer.Remaining(); got != 9 {
		t.Fatalf("remaining after restart = %d, want 9", got)
	}
	if !timer.Active() {
		t.Fatal("expected active after restart")
	}
}

func TestText(t *testing.T) {
	timer := NewTimerInterval(time.Minute)
	defer timer.Close()

	if timer.Text() != "" {
		t.Fatalf("idle text = %q, want empty", timer.Text())
	}
	timer.Start(42)
	if got := timer.Text(); got != "Resend in 42s" {
		t.Fatalf("active text = %q, want %q", got, "Resend in 42s")
	}
}

func TestStartNonPositiveIsNoOp(t *testing.T) {
	timer := NewTimer()
	defer timer.Close()

	timer.Start(0)
	timer.Start(-10)
	if timer.Active() {
		t.Fatal("non-positive Start must not activate the timer")
	}
}

func TestCloseStopsTicking(t *testing.T) {
	timer := NewTimerInterval(2 * time.Millisecond)
	timer.Start(1000)
	timer.Close()

	if timer.Active() {
		t.Fatal("expected inactive after Close")
	}
	remaining := timer.Remaining()
	time.Sleep(20 * time.Millisecond)
	if got := timer.Remaining(); got != remaining {
		t.Fatalf("remaining mutated after Close: %d -> %d", remaining, got)
	}

	// Close is idempotent and Start after Close is ignored.
	timer.Close()
	timer.Start(5)
	if timer.Active() {
		t.Fatal("Start after Close must be a no-op")
	}
}
