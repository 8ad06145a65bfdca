// Package collection maintains an always-available, in-process view of
// the regions hosted on this store: which key range each one owns and
// which raft role this node plays for it. It exists so that read-path
// routing, range scans and administrative tooling can ask "which region
// owns this key" without reaching into the consensus layer's own state.
//
// All mutable state lives behind a single worker goroutine fed by an
// unbounded mailbox. Producers (replica goroutines, query callers) only
// ever enqueue; the worker applies messages strictly in arrival order,
// which is also the order in which queries observe effects.
package collection

import (
	"errors"
	"log"
	"sync"

	"go.etcd.io/etcd/raft/v3"

	regionpkg "regionview/internal/region"
)

// ErrStopped is returned by queries once the worker goroutine has
// terminated (or was never started).
var ErrStopped = errors.New("region collection is stopped")

// Collection is the shared handle to the region view. A single value is
// created per store and may be passed around freely; all holders reach
// the same worker and the same indices.
type Collection struct {
	mailbox *mailbox
	stats   *stats

	mu      sync.Mutex
	started bool
	wg      sync.WaitGroup
}

// New creates a collection. Start must be called before the event
// source begins delivering notifications.
func New() *Collection {
	return &Collection{
		mailbox: newMailbox(),
		stats:   newStats(),
	}
}

// Start launches the worker goroutine. It must be called exactly once.
func (c *Collection) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		panic("region collection started twice")
	}
	c.started = true

	c.wg.Add(1)
	go c.run()
}

// Stop closes the mailbox and blocks until the worker has drained every
// already-enqueued message and exited. Draining before exit keeps the
// contract that no admitted message is lost silently; replies to
// callers that already gave up are simply never read. Stop must be
// called after the event source has been detached.
func (c *Collection) Stop() {
	c.mailbox.close()
	c.wg.Wait()
}

func (c *Collection) isStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

func (c *Collection) run() {
	defer c.wg.Done()
	w := newWorker(c.stats)
	for {
		msg, ok := c.mailbox.pop()
		if !ok {
			return
		}
		w.handle(msg)
	}
}

// NotifyCreated records that a region became known to this store.
// Fire-and-forget: the caller does not wait for the event to be applied.
func (c *Collection) NotifyCreated(r regionpkg.Region) {
	c.notify(&Event{Kind: EventCreateRegion, Region: r.Clone()})
}

// NotifyUpdated records a new metadata payload for a region.
func (c *Collection) NotifyUpdated(r regionpkg.Region) {
	c.notify(&Event{Kind: EventUpdateRegion, Region: r.Clone()})
}

// NotifyDestroyed records that a region was removed from this store.
func (c *Collection) NotifyDestroyed(r regionpkg.Region) {
	c.notify(&Event{Kind: EventDestroyRegion, Region: r.Clone()})
}

// NotifyRoleChanged records that this node's raft role for a region changed.
func (c *Collection) NotifyRoleChanged(r regionpkg.Region, role raft.StateType) {
	c.notify(&Event{Kind: EventRoleChange, Region: r.Clone(), Role: role})
}

func (c *Collection) notify(ev *Event) {
	if !c.mailbox.push(message{event: ev}) {
		log.Printf("regionview: dropping %s delivered after stop", ev)
	}
}

// SeekRegion scans region boundaries strictly after from, in ascending
// end-key order, and returns the first region passing filter. At most
// limit boundaries are visited; limit must be positive. An exhausted
// budget yields SeekLimitExceeded with the key to resume from, an
// exhausted keyspace yields SeekEnded. The call blocks until the worker
// has processed every message enqueued before it.
func (c *Collection) SeekRegion(from []byte, filter Filter, limit uint32) (SeekOutcome, error) {
	if limit == 0 {
		panic("SeekRegion called with zero limit")
	}
	if !c.isStarted() {
		return SeekOutcome{}, ErrStopped
	}
	req := &seekRequest{
		from:   append([]byte(nil), from...),
		filter: filter,
		limit:  limit,
		reply:  make(chan SeekOutcome, 1),
	}
	if !c.mailbox.push(message{seek: req}) {
		return SeekOutcome{}, ErrStopped
	}
	return <-req.reply, nil
}

// DebugDump deep-copies both indices. Verification only; not part of
// the operational contract.
func (c *Collection) DebugDump() (RegionsMap, RegionRangesMap, error) {
	if !c.isStarted() {
		return nil, nil, ErrStopped
	}
	req := &dumpRequest{reply: make(chan dumpResult, 1)}
	if !c.mailbox.push(message{dump: req}) {
		return nil, nil, ErrStopped
	}
	res := <-req.reply
	return res.regions, res.ranges, nil
}

// Diagnostics samples the collection's counters and queue depth.
func (c *Collection) Diagnostics() Diagnostics {
	return Diagnostics{
		Regions:           c.stats.regionCount.Load(),
		PendingMessages:   c.mailbox.len(),
		EventsCreated:     c.stats.created.Load(),
		EventsUpdated:     c.stats.updated.Load(),
		EventsDestroyed:   c.stats.destroyed.Load(),
		EventsRoleChanged: c.stats.roleChanges.Load(),
		SeeksFound:        c.stats.seekFound.Load(),
		SeeksLimited:      c.stats.seekLimited.Load(),
		SeeksEnded:        c.stats.seekEnded.Load(),
	}
}
