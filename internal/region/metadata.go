package region

// ID uniquely identifies a Region. IDs are stable and unique while the
// region exists; the consensus layer allocates them.
type ID uint64

// KeyRange is the half-open key range [Start, End) handled by a Region.
type KeyRange struct {
	Start []byte
	End   []byte // empty slice denotes the maximum bound
}

// Epoch tracks structural changes of a Region.
type Epoch struct {
	// Version increases when the key range of a Region changes (split/merge).
	Version uint64
	// ConfVersion increases when the peer set changes (add/remove peers).
	ConfVersion uint64
}

// PeerRole distinguishes voting members from learners.
type PeerRole int

const (
	// Voter is a full voting member of the Region's Raft group.
	Voter PeerRole = iota
	// Learner only receives logs; not part of quorum until promoted.
	Learner
)

// Peer describes a Region replica hosted on a Store.
type Peer struct {
	ID      uint64
	StoreID uint64
	Role    PeerRole
}

// Region aggregates metadata describing a single shard of the keyspace.
// Consumers outside the consensus layer treat everything beyond ID and
// Range as opaque.
type Region struct {
	ID     ID
	Range  KeyRange
	Epoch  Epoch
	Peers  []Peer
	Leader uint64 // Peer ID currently considered leader (best-effort hint)
}

// ContainsKey reports whether the region's range covers the provided key.
func (r *Region) ContainsKey(key []byte) bool {
	if r == nil {
		return false
	}
	if len(r.Range.Start) > 0 && string(key) < string(r.Range.Start) {
		return false
	}
	if len(r.Range.End) > 0 && string(key) >= string(r.Range.End) {
		return false
	}
	return true
}

// Clone returns a copy of the Region metadata safe to hand across goroutines.
func (r *Region) Clone() Region {
	if r == nil {
		return Region{}
	}
	cp := *r
	cp.Range = KeyRange{
		Start: append([]byte(nil), r.Range.Start...),
		End:   append([]byte(nil), r.Range.End...),
	}
	if len(r.Peers) > 0 {
		cp.Peers = append([]Peer(nil), r.Peers...)
	}
	return cp
}
