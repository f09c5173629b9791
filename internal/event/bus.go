// Package event broadcasts theme changes to any number of independent listeners.
package event

import (
	"sync"

	"github.com/jmylchreest/themetoggle/internal/theme"
)

// Change announces that a theme was applied.
type Change struct {
	Theme theme.ID `json:"theme"`
	// Source names what caused the change, e.g. "user", "system", "shortcut".
	Source string `json:"source,omitempty"`
}

// Source values used by the applicator and its callers.
const (
	SourceUser     = "user"
	SourceSystem   = "system"
	SourceShortcut = "shortcut"
	SourceStorage  = "storage"
	SourceInit     = "init"
	SourceImport   = "import"
)

type subscriber struct {
	id int
	fn func(Change)
}

// Bus is an observer list. Callbacks run synchronously on the publishing
// goroutine; channel listeners receive without blocking the publisher.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	callbacks []subscriber
	channels  []chan Change
	closed    bool
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Change)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || fn == nil {
		return func() {}
	}

	b.nextID++
	id := b.nextID
	b.callbacks = append(b.callbacks, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.callbacks {
		if sub.id == id {
			b.callbacks = append(b.callbacks[:i], b.callbacks[i+1:]...)
			return
		}
	}
}

// Listen returns a channel that receives changes.
func (b *Bus) Listen() <-chan Change {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Change, 10)
	if b.closed {
		close(ch)
		return ch
	}
	b.channels = append(b.channels, ch)
	return ch
}

// Unlisten removes and closes a channel returned by Listen.
func (b *Bus) Unlisten(ch <-chan Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.channels {
		if sub == ch {
			b.channels = append(b.channels[:i], b.channels[i+1:]...)
			close(sub)
			return
		}
	}
}

// Publish delivers c once to every current listener.
func (b *Bus) Publish(c Change) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	callbacks := make([]subscriber, len(b.callbacks))
	copy(callbacks, b.callbacks)
	for _, ch := range b.channels {
		select {
		case ch <- c:
		default:
			// Channel full, skip
		}
	}
	b.mu.Unlock()

	// Run callbacks outside the lock so they can subscribe or publish.
	for _, sub := range callbacks {
		sub.fn(c)
	}
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.callbacks) + len(b.channels)
}

// Close drops all callbacks and closes all channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.channels {
		close(ch)
	}
	b.channels = nil
	b.callbacks = nil
}
