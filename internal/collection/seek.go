package collection

import (
	"fmt"

	"go.etcd.io/etcd/raft/v3"

	regionpkg "regionview/internal/region"
)

// Filter decides whether a region satisfies a seek. It runs on the
// worker goroutine and must not retain the region or block.
type Filter func(r regionpkg.Region, role raft.StateType) bool

// SeekOutcomeKind tags the result of a SeekRegion call. Exactly one of
// the three outcomes is produced per call.
type SeekOutcomeKind int

const (
	// SeekFound means a region passing the filter was located.
	SeekFound SeekOutcomeKind = iota
	// SeekLimitExceeded means the scan budget ran out before a match;
	// NextKey is where a follow-up call should resume.
	SeekLimitExceeded
	// SeekEnded means the keyspace was exhausted without a match.
	SeekEnded
)

func (k SeekOutcomeKind) String() string {
	switch k {
	case SeekFound:
		return "found"
	case SeekLimitExceeded:
		return "limit-exceeded"
	case SeekEnded:
		return "ended"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// SeekOutcome is the result of a bounded forward scan. Region is set
// for SeekFound; NextKey is set for SeekLimitExceeded.
type SeekOutcome struct {
	Kind    SeekOutcomeKind
	Region  regionpkg.Region
	NextKey []byte
}

type seekRequest struct {
	from   []byte
	filter Filter
	limit  uint32
	reply  chan SeekOutcome
}

type dumpRequest struct {
	reply chan dumpResult
}

type dumpResult struct {
	regions RegionsMap
	ranges  RegionRangesMap
}
