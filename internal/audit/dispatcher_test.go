package audit

import (
	"context"
	"testing"
	"time"
)

func collect(t *testing.T, sink *ChannelSink, n int) []Event {
	t.Helper()
	events := make([]Event, 0, n)
	timeout := time.After(2 * time.Second)
	for len(events) < n {
		select {
		case e := <-sink.Events():
			events = append(events, e)
		case <-timeout:
			t.Fatalf("collected %d of %d events before timeout", len(events), n)
		}
	}
	return events
}

func TestDispatcherStampsAndForwards(t *testing.T) {
	sink := NewChannelSink(8)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 8, DropIfFull: true}, sink)
	defer d.Close()

	d.Emit(context.Background(), Event{EventType: "login_success", Username: "alice"})

	events := collect(t, sink, 1)
	e := events[0]
	if e.EventType != "login_success" || e.Username != "alice" {
		t.Fatalf("unexpected event %+v", e)
	}
	if e.Timestamp.IsZero() {
		t.Fatal("expected stamped timestamp")
	}
	if e.AttemptID == "" {
		t.Fatal("expected stamped attempt ID")
	}
}

func TestDispatcherKeepsCallerAttemptID(t *testing.T) {
	sink := NewChannelSink(8)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 8}, sink)
	defer d.Close()

	d.Emit(context.Background(), Event{EventType: "login_failure", AttemptID: "fixed"})

	if got := collect(t, sink, 1)[0].AttemptID; got != "fixed" {
		t.Fatalf("AttemptID = %q, want fixed", got)
	}
}

func TestDispatcherDisabledReturnsNil(t *testing.T) {
	d := NewDispatcher(Config{}, nil)
	if d != nil {
		t.Fatal("disabled config must produce a nil dispatcher")
	}

	// Nil receivers are safe no-ops.
	d.Emit(context.Background(), Event{EventType: "noop"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reports zero drops")
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	blocked := make(chan struct{})
	release := make(chan struct{})
	sink := sinkFunc(func(context.Context, Event) {
		select {
		case blocked <- struct{}{}:
		default:
		}
		<-release
	})

	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// First event occupies the worker, second fills the buffer, the rest drop.
	d.Emit(context.Background(), Event{EventType: "a"})
	<-blocked
	d.Emit(context.Background(), Event{EventType: "b"})
	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), Event{EventType: "c"})
	}

	if d.Dropped() == 0 {
		t.Fatal("expected dropped events")
	}

	close(release)
	d.Close()
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := NewChannelSink(16)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 16, DropIfFull: true}, sink)

	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), Event{EventType: "drain"})
	}
	d.Close()

	got := 0
	for {
		select {
		case <-sink.Events():
			got++
		default:
			if got != 5 {
				t.Fatalf("drained %d events, want 5", got)
			}
			return
		}
	}
}

type sinkFunc func(ctx context.Context, event Event)

func (f sinkFunc) Emit(ctx context.Context, event Event) { f(ctx, event) }
