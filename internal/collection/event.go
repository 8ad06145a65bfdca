package collection

import (
	"fmt"

	"go.etcd.io/etcd/raft/v3"

	regionpkg "regionview/internal/region"
)

// EventKind tags a region lifecycle event emitted by the consensus layer.
type EventKind int

const (
	// EventCreateRegion announces a region newly known to this store.
	EventCreateRegion EventKind = iota
	// EventUpdateRegion carries a new metadata payload for a known region.
	EventUpdateRegion
	// EventDestroyRegion announces that a region was removed from this store.
	EventDestroyRegion
	// EventRoleChange announces that this node's raft role for a region changed.
	EventRoleChange
)

func (k EventKind) String() string {
	switch k {
	case EventCreateRegion:
		return "create"
	case EventUpdateRegion:
		return "update"
	case EventDestroyRegion:
		return "destroy"
	case EventRoleChange:
		return "role-change"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Event is one region lifecycle notification. Role is only meaningful for
// EventRoleChange. Events for a single logical operation (split, merge)
// arrive as independent messages and may be delivered in any relative
// order; the worker's handlers converge regardless.
type Event struct {
	Kind   EventKind
	Region regionpkg.Region
	Role   raft.StateType
}

func (e Event) String() string {
	if e.Kind == EventRoleChange {
		return fmt.Sprintf("%s(region %d, role %s)", e.Kind, e.Region.ID, e.Role)
	}
	return fmt.Sprintf("%s(region %d)", e.Kind, e.Region.ID)
}
