package collection

import "sync/atomic"

// stats counts what the worker has applied. Written by the worker
// goroutine, read by Diagnostics from arbitrary goroutines.
type stats struct {
	created     atomic.Uint64
	updated     atomic.Uint64
	destroyed   atomic.Uint64
	roleChanges atomic.Uint64
	seekFound   atomic.Uint64
	seekLimited atomic.Uint64
	seekEnded   atomic.Uint64
	regionCount atomic.Int64
}

func newStats() *stats {
	return &stats{}
}

func (s *stats) recordEvent(kind EventKind) {
	switch kind {
	case EventCreateRegion:
		s.created.Add(1)
	case EventUpdateRegion:
		s.updated.Add(1)
	case EventDestroyRegion:
		s.destroyed.Add(1)
	case EventRoleChange:
		s.roleChanges.Add(1)
	}
}

func (s *stats) recordSeek(kind SeekOutcomeKind) {
	switch kind {
	case SeekFound:
		s.seekFound.Add(1)
	case SeekLimitExceeded:
		s.seekLimited.Add(1)
	case SeekEnded:
		s.seekEnded.Add(1)
	}
}

func (s *stats) setRegions(n int) {
	s.regionCount.Store(int64(n))
}

// Diagnostics is a point-in-time sample of the collection's activity,
// suitable for feeding a metrics collector.
type Diagnostics struct {
	Regions           int64
	PendingMessages   int
	EventsCreated     uint64
	EventsUpdated     uint64
	EventsDestroyed   uint64
	EventsRoleChanged uint64
	SeeksFound        uint64
	SeeksLimited      uint64
	SeeksEnded        uint64
}
