package platform

import (
	"testing"
)

func TestDispatcher_DeliversExactlyOnce(t *testing.T) {
	var got []Message
	d := NewDispatcher(func(msg Message) {
		got = append(got, msg)
	})

	d.Dispatch("clicked")
	d.Dispatch("clicked")

	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(got))
	}
	if got[0] != "clicked" {
		t.Errorf("expected message 'clicked', got %v", got[0])
	}
}

func TestDispatcher_UsesScheduler(t *testing.T) {
	var queue []func()
	delivered := 0

	d := NewDispatcher(func(Message) { delivered++ })
	d.SetScheduler(func(callback func()) {
		queue = append(queue, callback)
	})

	d.Dispatch("event")

	// Nothing is delivered until the scheduler drains.
	if delivered != 0 {
		t.Fatalf("expected deferred delivery, got %d immediate", delivered)
	}
	if len(queue) != 1 {
		t.Fatalf("expected 1 scheduled callback, got %d", len(queue))
	}

	queue[0]()
	if delivered != 1 {
		t.Errorf("expected 1 delivery after drain, got %d", delivered)
	}
}

func TestDispatcher_NilSinkIsNoop(t *testing.T) {
	d := NewDispatcher(nil)
	d.Dispatch("dropped") // must not panic
}

func TestDispatcher_SinkPanicDoesNotPropagate(t *testing.T) {
	d := NewDispatcher(func(Message) {
		panic("handler bug")
	})

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("expected panic to be contained, got %v", r)
		}
	}()
	d.Dispatch("event")
}
