package store

import "sync"

// notifier implements the state-changed subscription contract shared by
// both stores. Callbacks run synchronously, outside the state lock.
type notifier struct {
	mu   sync.Mutex
	subs map[int]func()
	next int
}

// subscribe registers fn to run after every state change and returns a
// cancel function.
func (n *notifier) subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func())
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// publish invokes all registered callbacks.
func (n *notifier) publish() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
