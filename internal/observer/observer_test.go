package observer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.etcd.io/etcd/raft/v3"

	"regionview/internal/collection"
	regionpkg "regionview/internal/region"
)

type recordingObserver struct {
	changes []RegionChangeEvent
	roles   []raft.StateType
}

func (r *recordingObserver) OnRegionChanged(_ regionpkg.Region, event RegionChangeEvent) {
	r.changes = append(r.changes, event)
}

func (r *recordingObserver) OnRoleChanged(_ regionpkg.Region, role raft.StateType) {
	r.roles = append(r.roles, role)
}

func TestHostFanOut(t *testing.T) {
	h := NewHost()
	first := &recordingObserver{}
	second := &recordingObserver{}
	h.RegisterRegionChangeObserver(first)
	h.RegisterRegionChangeObserver(second)
	h.RegisterRoleObserver(first)

	r := regionpkg.Region{ID: 1}
	h.NotifyRegionChanged(r, RegionCreated)
	h.NotifyRegionChanged(r, RegionDestroyed)
	h.NotifyRoleChanged(r, raft.StateLeader)

	require.Equal(t, []RegionChangeEvent{RegionCreated, RegionDestroyed}, first.changes)
	require.Equal(t, []RegionChangeEvent{RegionCreated, RegionDestroyed}, second.changes)
	require.Equal(t, []raft.StateType{raft.StateLeader}, first.roles)
	require.Empty(t, second.roles)
}

func TestRegisterEventSender(t *testing.T) {
	c := collection.New()
	c.Start()
	defer c.Stop()

	h := NewHost()
	RegisterEventSender(h, c)

	h.NotifyRegionChanged(regionpkg.Region{ID: 1, Range: regionpkg.KeyRange{End: []byte("m")}}, RegionCreated)
	h.NotifyRegionChanged(regionpkg.Region{ID: 2, Range: regionpkg.KeyRange{Start: []byte("m")}}, RegionCreated)
	h.NotifyRoleChanged(regionpkg.Region{ID: 2, Range: regionpkg.KeyRange{Start: []byte("m")}}, raft.StateLeader)
	h.NotifyRegionChanged(regionpkg.Region{ID: 1, Range: regionpkg.KeyRange{End: []byte("m")}}, RegionDestroyed)

	regions, _, err := c.DebugDump()
	require.NoError(t, err)
	require.Len(t, regions, 1)
	require.Equal(t, raft.StateLeader, regions[2].Role)
}
