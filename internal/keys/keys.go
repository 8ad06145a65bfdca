// Package keys defines the encoding that maps logical keys into the data
// keyspace used by range indexes. Every logical key is prefixed with a
// single data-prefix byte, which keeps the data keyspace contiguous and
// leaves room for a sentinel one byte above it that sorts after every
// encoded key. The sentinel stands in for the unbounded end key of the
// last region.
package keys

import "bytes"

const dataPrefix byte = 'z'

var (
	// DataMinKey is the smallest possible encoded data key.
	DataMinKey = []byte{dataPrefix}
	// DataMaxKey sorts strictly after every encoded data key. It is used
	// as the end-key sentinel for regions with an unbounded range.
	DataMaxKey = []byte{dataPrefix + 1}
)

// DataKey encodes a logical key into the data keyspace.
func DataKey(key []byte) []byte {
	out := make([]byte, 0, len(key)+1)
	out = append(out, dataPrefix)
	return append(out, key...)
}

// DataEndKey encodes a region end key. An empty end key denotes the
// maximum bound and maps to the DataMaxKey sentinel.
func DataEndKey(key []byte) []byte {
	if len(key) == 0 {
		return append([]byte(nil), DataMaxKey...)
	}
	return DataKey(key)
}

// OriginKey strips the data prefix from an encoded key, recovering the
// logical key. It must not be called on the DataMaxKey sentinel, which
// has no logical counterpart.
func OriginKey(dataKey []byte) []byte {
	if !ValidDataKey(dataKey) {
		panic("origin key called on a key outside the data keyspace")
	}
	return append([]byte(nil), dataKey[1:]...)
}

// ValidDataKey reports whether the key carries the data prefix.
func ValidDataKey(key []byte) bool {
	return len(key) >= 1 && key[0] == dataPrefix
}

// IsMaxKey reports whether the encoded key is at or beyond the sentinel.
func IsMaxKey(key []byte) bool {
	return bytes.Compare(key, DataMaxKey) >= 0
}
