package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataKeyRoundTrip(t *testing.T) {
	for _, key := range [][]byte{nil, []byte(""), []byte("a"), []byte("k1"), {0x00}, {0xff, 0xff}} {
		encoded := DataKey(key)
		require.True(t, ValidDataKey(encoded))
		require.True(t, bytes.Equal(OriginKey(encoded), key))
	}
}

func TestDataEndKeySentinel(t *testing.T) {
	require.Equal(t, DataMaxKey, DataEndKey(nil))
	require.Equal(t, DataMaxKey, DataEndKey([]byte{}))
	require.Equal(t, DataKey([]byte("k9")), DataEndKey([]byte("k9")))
}

func TestOrdering(t *testing.T) {
	// The sentinel sorts after every encoded key, including keys made of
	// maximal bytes.
	for _, key := range [][]byte{[]byte(""), []byte("k1"), {0xff, 0xff, 0xff}} {
		require.Negative(t, bytes.Compare(DataKey(key), DataMaxKey))
	}
	// Encoding preserves the order of logical keys.
	require.Negative(t, bytes.Compare(DataKey([]byte("k1")), DataKey([]byte("k2"))))
	require.Negative(t, bytes.Compare(DataMinKey, DataKey([]byte{0x00})))
}

func TestOriginKeyPanicsOutsideDataKeyspace(t *testing.T) {
	require.Panics(t, func() { OriginKey([]byte("k1")) })
	require.Panics(t, func() { OriginKey(nil) })
}

func TestIsMaxKey(t *testing.T) {
	require.True(t, IsMaxKey(DataMaxKey))
	require.True(t, IsMaxKey(append(append([]byte(nil), DataMaxKey...), 0x00)))
	require.False(t, IsMaxKey(DataKey([]byte{0xff})))
}
