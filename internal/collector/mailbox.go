package collector

import (
	"sync"
	"time"
)

// Mailbox is a single-slot channel of sample intervals. Send never blocks:
// an unread value is replaced by the newer one.
type Mailbox struct {
	mu     sync.Mutex
	ch     chan time.Duration
	closed bool
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{ch: make(chan time.Duration, 1)}
}

// Send posts d, discarding any value the collector hasn't read yet.
// Sending on a closed mailbox is a no-op.
func (m *Mailbox) Send(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	select {
	case <-m.ch:
	default:
	}
	m.ch <- d
}

// C is the receive side handed to Spawn.
func (m *Mailbox) C() <-chan time.Duration {
	return m.ch
}

// Close closes the mailbox. A collector reading from it exits.
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	close(m.ch)
}
