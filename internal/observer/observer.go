// Package observer is the registration point between the consensus
// layer and subsystems that want to watch region lifecycle events. The
// consensus layer owns a Host and invokes its Notify methods from its
// replica goroutines; registered observers receive each event on the
// calling goroutine and must hand off quickly.
package observer

import (
	"sync"

	"go.etcd.io/etcd/raft/v3"

	"regionview/internal/collection"
	regionpkg "regionview/internal/region"
)

// RegionChangeEvent tags which lifecycle transition a region went through.
type RegionChangeEvent int

const (
	// RegionCreated fires when a region becomes known to this store.
	RegionCreated RegionChangeEvent = iota
	// RegionUpdated fires when a region's metadata payload changes.
	RegionUpdated
	// RegionDestroyed fires when a region is removed from this store.
	RegionDestroyed
)

// RegionChangeObserver receives region lifecycle notifications.
type RegionChangeObserver interface {
	OnRegionChanged(r regionpkg.Region, event RegionChangeEvent)
}

// RoleObserver receives raft role transitions for regions on this store.
type RoleObserver interface {
	OnRoleChanged(r regionpkg.Region, role raft.StateType)
}

// Host fans lifecycle notifications out to registered observers.
type Host struct {
	mu              sync.RWMutex
	regionObservers []RegionChangeObserver
	roleObservers   []RoleObserver
}

func NewHost() *Host {
	return &Host{}
}

// RegisterRegionChangeObserver adds an observer for lifecycle events.
func (h *Host) RegisterRegionChangeObserver(o RegionChangeObserver) {
	h.mu.Lock()
	h.regionObservers = append(h.regionObservers, o)
	h.mu.Unlock()
}

// RegisterRoleObserver adds an observer for role transitions.
func (h *Host) RegisterRoleObserver(o RoleObserver) {
	h.mu.Lock()
	h.roleObservers = append(h.roleObservers, o)
	h.mu.Unlock()
}

// NotifyRegionChanged delivers a lifecycle event to every registered
// region change observer, in registration order.
func (h *Host) NotifyRegionChanged(r regionpkg.Region, event RegionChangeEvent) {
	h.mu.RLock()
	observers := h.regionObservers
	h.mu.RUnlock()
	for _, o := range observers {
		o.OnRegionChanged(r, event)
	}
}

// NotifyRoleChanged delivers a role transition to every registered role
// observer, in registration order.
func (h *Host) NotifyRoleChanged(r regionpkg.Region, role raft.StateType) {
	h.mu.RLock()
	observers := h.roleObservers
	h.mu.RUnlock()
	for _, o := range observers {
		o.OnRoleChanged(r, role)
	}
}

// eventSender bridges host notifications into a collection's mailbox.
type eventSender struct {
	collection *collection.Collection
}

func (s eventSender) OnRegionChanged(r regionpkg.Region, event RegionChangeEvent) {
	switch event {
	case RegionCreated:
		s.collection.NotifyCreated(r)
	case RegionUpdated:
		s.collection.NotifyUpdated(r)
	case RegionDestroyed:
		s.collection.NotifyDestroyed(r)
	}
}

func (s eventSender) OnRoleChanged(r regionpkg.Region, role raft.StateType) {
	s.collection.NotifyRoleChanged(r, role)
}

// RegisterEventSender wires a collection into the host so it observes
// every lifecycle and role event. The collection should be started
// before the host begins delivering notifications.
func RegisterEventSender(h *Host, c *collection.Collection) {
	sender := eventSender{collection: c}
	h.RegisterRegionChangeObserver(sender)
	h.RegisterRoleObserver(sender)
}
