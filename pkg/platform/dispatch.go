package platform

import (
	"sync"

	"github.com/go-anvil/anvil/pkg/errors"
)

// Message is an application-level message produced from a native event.
type Message any

// Dispatcher routes messages produced by native event handlers into the
// application's message loop. Native callbacks may fire on any thread; the
// dispatcher marshals delivery onto the UI thread via the registered
// scheduler so that message processing never races with reconciliation.
type Dispatcher struct {
	mu        sync.RWMutex
	sink      func(Message)
	scheduler func(func())
}

// NewDispatcher creates a dispatcher delivering to the given sink.
func NewDispatcher(sink func(Message)) *Dispatcher {
	return &Dispatcher{sink: sink}
}

// SetScheduler registers the function used to marshal delivery onto the UI
// thread. This should be called once by the host during initialization.
// With no scheduler registered, messages are delivered inline on the
// calling thread.
func (d *Dispatcher) SetScheduler(fn func(callback func())) {
	d.mu.Lock()
	d.scheduler = fn
	d.mu.Unlock()
}

// Dispatch delivers one message to the sink, exactly once per call.
// A panicking sink is reported and does not propagate into native code.
func (d *Dispatcher) Dispatch(msg Message) {
	d.mu.RLock()
	sink := d.sink
	scheduler := d.scheduler
	d.mu.RUnlock()

	if sink == nil {
		return
	}
	deliver := func() {
		defer errors.Recover("platform.Dispatch")
		sink(msg)
	}
	if scheduler != nil {
		scheduler(deliver)
		return
	}
	deliver()
}
