// Package waitlock provides a single holder, FIFO fair mutual exclusion
// primitive. Acquire suspends the caller on a wait queue instead of
// polling, and honors context cancellation without ever leaving the lock
// held. The lock is not reentrant.
package waitlock

import (
	"context"
	"sync"
)

// Mutex is a single holder lock whose waiters are woken in arrival order.
// On release, ownership is handed directly to the oldest waiter so a
// late arriving caller can never barge ahead of the queue.
type Mutex struct {
	mu      sync.Mutex
	held    bool
	waiters []chan struct{}
}

// New constructs a Mutex for use.
func New() *Mutex {
	return &Mutex{}
}

// Acquire suspends the caller until the lock is free and the caller is at
// the head of the wait queue, then marks the lock held. If the context is
// cancelled while waiting, the caller is removed from the queue and the
// context error is returned.
func (m *Mutex) Acquire(ctx context.Context) error {
	m.mu.Lock()

	if !m.held && len(m.waiters) == 0 {
		m.held = true
		m.mu.Unlock()
		return nil
	}

	ready := make(chan struct{})
	m.waiters = append(m.waiters, ready)
	m.mu.Unlock()

	select {
	case <-ready:
		return nil

	case <-ctx.Done():
		m.mu.Lock()
		for i, w := range m.waiters {
			if w == ready {
				m.waiters = append(m.waiters[:i], m.waiters[i+1:]...)
				m.mu.Unlock()
				return ctx.Err()
			}
		}
		m.mu.Unlock()

		// The lock was handed to us in the race between the grant and the
		// cancellation. Pass it on so it is not leaked.
		m.Release()
		return ctx.Err()
	}
}

// Release marks the lock free and wakes the oldest waiter, if any.
// Ownership transfers directly to that waiter.
func (m *Mutex) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.waiters) > 0 {
		ready := m.waiters[0]
		m.waiters = m.waiters[1:]
		close(ready)
		return
	}

	m.held = false
}
