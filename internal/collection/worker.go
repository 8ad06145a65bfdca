package collection

import (
	"bytes"
	"log"

	"github.com/google/btree"
	"go.etcd.io/etcd/raft/v3"

	"regionview/internal/keys"
	regionpkg "regionview/internal/region"
)

// RegionInfo is the collection's record of one region hosted on this
// store: the latest metadata payload plus the raft role this node plays
// for it. Outdated is reserved; nothing sets it today.
type RegionInfo struct {
	Region   regionpkg.Region
	Role     raft.StateType
	Outdated bool
}

// RegionsMap is the dump form of the id-keyed index.
type RegionsMap map[regionpkg.ID]RegionInfo

// RegionRangesMap is the dump form of the range index, keyed by the
// string form of the encoded end key.
type RegionRangesMap map[string]regionpkg.ID

type rangeEntry struct {
	endKey []byte // encoded with keys.DataEndKey
	id     regionpkg.ID
}

func rangeEntryLess(a, b rangeEntry) bool {
	return bytes.Compare(a.endKey, b.endKey) < 0
}

// worker owns both indices. It runs on a single goroutine and executes
// one message to completion before taking the next, so no lock guards
// the indices. Nothing outside this file may touch them directly; all
// visibility goes through values copied onto reply channels.
type worker struct {
	// region id -> info
	regions map[regionpkg.ID]*RegionInfo
	// encoded end key -> region id, ordered
	regionRanges *btree.BTreeG[rangeEntry]
	stats        *stats
}

func newWorker(stats *stats) *worker {
	return &worker{
		regions:      make(map[regionpkg.ID]*RegionInfo),
		regionRanges: btree.NewG(2, rangeEntryLess),
		stats:        stats,
	}
}

func (w *worker) handleCreateRegion(r regionpkg.Region) {
	if _, ok := w.regions[r.ID]; ok {
		log.Printf("regionview: create for region %d which already exists, treating as update", r.ID)
		w.handleUpdateRegion(r)
		return
	}

	w.regionRanges.ReplaceOrInsert(rangeEntry{endKey: keys.DataEndKey(r.Range.End), id: r.ID})
	// New regions start as followers; the consensus engine always sends a
	// role-change once the replica's real role is known.
	w.regions[r.ID] = &RegionInfo{Region: r, Role: raft.StateFollower}
}

func (w *worker) handleUpdateRegion(r regionpkg.Region) {
	info, ok := w.regions[r.ID]
	if !ok {
		log.Printf("regionview: update for region %d which doesn't exist, treating as create", r.ID)
		w.regions[r.ID] = &RegionInfo{Region: r, Role: raft.StateFollower}
	} else {
		if !bytes.Equal(info.Region.Range.End, r.Range.End) {
			// The end key moved. Drop the stale range entry unless another
			// region has already claimed that boundary; its claim is newer
			// and must not be clobbered.
			oldEndKey := keys.DataEndKey(info.Region.Range.End)
			if e, found := w.regionRanges.Get(rangeEntry{endKey: oldEndKey}); found && e.id == r.ID {
				w.regionRanges.Delete(rangeEntry{endKey: oldEndKey})
			}
		}
		// Keep the role: an update only replaces the metadata payload.
		info.Region = r
	}

	// Within one logical operation all participating regions carry
	// pairwise-distinct end keys, so upserting unconditionally is safe.
	w.regionRanges.ReplaceOrInsert(rangeEntry{endKey: keys.DataEndKey(r.Range.End), id: r.ID})
}

func (w *worker) handleDestroyRegion(r regionpkg.Region) {
	info, ok := w.regions[r.ID]
	if !ok {
		log.Printf("regionview: destroy for region %d which doesn't exist", r.ID)
		return
	}
	delete(w.regions, r.ID)

	// Same non-clobber rule as update: the boundary may meanwhile belong
	// to a surviving region.
	endKey := keys.DataEndKey(info.Region.Range.End)
	if e, found := w.regionRanges.Get(rangeEntry{endKey: endKey}); found && e.id == r.ID {
		w.regionRanges.Delete(rangeEntry{endKey: endKey})
	}
}

func (w *worker) handleRoleChange(r regionpkg.Region, role raft.StateType) {
	info, ok := w.regions[r.ID]
	if !ok {
		log.Printf("regionview: role change for region %d which doesn't exist, creating it", r.ID)
		w.handleCreateRegion(r)
		info = w.regions[r.ID]
	}
	info.Role = role
}

func (w *worker) handleEvent(ev *Event) {
	switch ev.Kind {
	case EventCreateRegion:
		w.handleCreateRegion(ev.Region)
	case EventUpdateRegion:
		w.handleUpdateRegion(ev.Region)
	case EventDestroyRegion:
		w.handleDestroyRegion(ev.Region)
	case EventRoleChange:
		w.handleRoleChange(ev.Region, ev.Role)
	default:
		log.Printf("regionview: dropping event with unknown kind %d", int(ev.Kind))
		return
	}
	w.stats.recordEvent(ev.Kind)
	w.stats.setRegions(len(w.regions))
}

// handleSeekRegion scans the range index strictly after from, in
// ascending end-key order, for the first region passing the filter.
// limit bounds how many boundaries may be visited.
func (w *worker) handleSeekRegion(from []byte, filter Filter, limit uint32) SeekOutcome {
	if limit == 0 {
		panic("seek region limit must be positive")
	}

	fromKey := keys.DataKey(from)
	outcome := SeekOutcome{Kind: SeekEnded}
	w.regionRanges.AscendGreaterOrEqual(rangeEntry{endKey: fromKey}, func(e rangeEntry) bool {
		if bytes.Equal(e.endKey, fromKey) {
			// The scan is exclusive of the starting boundary.
			return true
		}
		if info, ok := w.regions[e.id]; ok && !info.Outdated && filter(info.Region, info.Role) {
			outcome = SeekOutcome{Kind: SeekFound, Region: info.Region.Clone()}
			return false
		}

		limit--
		if limit == 0 {
			// Past the sentinel there is nothing left to find, so report
			// Ended rather than a resumable LimitExceeded.
			if keys.IsMaxKey(e.endKey) {
				return false
			}
			outcome = SeekOutcome{Kind: SeekLimitExceeded, NextKey: keys.OriginKey(e.endKey)}
			return false
		}
		return true
	})

	w.stats.recordSeek(outcome.Kind)
	return outcome
}

// debugDump deep-copies both indices. Verification only.
func (w *worker) debugDump() dumpResult {
	regions := make(RegionsMap, len(w.regions))
	for id, info := range w.regions {
		regions[id] = RegionInfo{
			Region:   info.Region.Clone(),
			Role:     info.Role,
			Outdated: info.Outdated,
		}
	}
	ranges := make(RegionRangesMap, w.regionRanges.Len())
	w.regionRanges.Ascend(func(e rangeEntry) bool {
		ranges[string(e.endKey)] = e.id
		return true
	})
	return dumpResult{regions: regions, ranges: ranges}
}

func (w *worker) handle(msg message) {
	switch {
	case msg.event != nil:
		w.handleEvent(msg.event)
	case msg.seek != nil:
		msg.seek.reply <- w.handleSeekRegion(msg.seek.from, msg.seek.filter, msg.seek.limit)
	case msg.dump != nil:
		msg.dump.reply <- w.debugDump()
	}
}
