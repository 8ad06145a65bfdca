package collection

import "sync"

// message is one unit of work for the worker goroutine: exactly one of
// the fields is set.
type message struct {
	event *Event
	seek  *seekRequest
	dump  *dumpRequest
}

// mailbox is the unbounded multi-producer single-consumer queue feeding
// the worker goroutine. Producers must never block waiting for the
// consumer to catch up: backpressure here could stall the consensus
// engine's own progress, so admission always succeeds while the mailbox
// is open. The cost is unbounded memory growth under sustained overload.
type mailbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []message
	closed bool
}

func newMailbox() *mailbox {
	m := &mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// push enqueues a message. It returns false if the mailbox has been
// closed, in which case the message was not admitted.
func (m *mailbox) push(msg message) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	m.items = append(m.items, msg)
	m.cond.Signal()
	return true
}

// pop blocks until a message is available or the mailbox is closed and
// fully drained. The second return value is false only once both hold.
func (m *mailbox) pop() (message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.items) == 0 && !m.closed {
		m.cond.Wait()
	}
	if len(m.items) == 0 {
		return message{}, false
	}
	msg := m.items[0]
	m.items[0] = message{}
	m.items = m.items[1:]
	if len(m.items) == 0 {
		m.items = nil
	}
	return msg, true
}

// close rejects further pushes. Messages already admitted remain
// poppable so the worker can drain before exiting.
func (m *mailbox) close() {
	m.mu.Lock()
	m.closed = true
	m.cond.Broadcast()
	m.mu.Unlock()
}

func (m *mailbox) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
