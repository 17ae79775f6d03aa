// Package notifier broadcasts history-changed pings to SSE listeners.
package notifier

import (
	"sync"
	"sync/atomic"
)

// Notifier fans a ping out to every subscriber whenever a new history entry
// is stored. Listeners receive an empty struct and should re-query the store.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
	version   atomic.Uint64
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel that receives a ping after each stored entry.
// The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast bumps the version and pings all listeners.
// Sends never block: a listener with a pending ping is skipped.
func (n *Notifier) Broadcast() {
	n.version.Add(1)

	n.mu.RLock()
	defer n.mu.RUnlock()
	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Version returns the number of broadcasts so far.
func (n *Notifier) Version() uint64 {
	return n.version.Load()
}

// Listeners returns the number of active subscribers.
func (n *Notifier) Listeners() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
