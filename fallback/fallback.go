// Package fallback provides an immutable hash-based map with the same read
// API as scanmap.Map, for key sets that fail scanmap construction (too many
// keys, or discriminating bytes outside the plane budget). Construction
// never fails, so it composes directly with the pairs handed back inside a
// scanmap.BuildError.
//
// The table is open-addressing with linear probing over xxHash64 buckets,
// sized to stay at most half full. Lookups are a few probes; slower than a
// solved scanmap but with no restrictions on the key set beyond uniqueness.
package fallback

import (
	"iter"
	"math/bits"

	"github.com/cespare/xxhash/v2"

	"github.com/d1manson/scanmap"
)

// Map is an immutable string-keyed hash map. Like scanmap.Map it has no
// mutating operations after construction and is safe for unbounded
// concurrent reads.
type Map[V any] struct {
	pairs []scanmap.Pair[V] // construction order, for All and Len
	slots []int32           // hash table of indices into pairs, -1 = empty
	mask  uint64            // len(slots) - 1; len(slots) is a power of two
}

// FromPairs builds a Map from pairs. Keys must be distinct; a duplicate key
// keeps its first occurrence. The input slice is copied, not retained.
func FromPairs[V any](pairs []scanmap.Pair[V]) *Map[V] {
	stored := make([]scanmap.Pair[V], len(pairs))
	copy(stored, pairs)

	// Next power of two >= 2*len, so load factor stays <= 0.5 and linear
	// probe chains stay short.
	n := 2 * len(stored)
	if n < 2 {
		n = 2
	}
	size := 1 << bits.Len(uint(n-1))

	m := &Map[V]{
		pairs: stored,
		slots: make([]int32, size),
		mask:  uint64(size - 1),
	}
	for i := range m.slots {
		m.slots[i] = -1
	}

	for i, p := range stored {
		slot := xxhash.Sum64String(p.Key) & m.mask
		for m.slots[slot] >= 0 {
			if m.pairs[m.slots[slot]].Key == p.Key {
				break // duplicate key: first occurrence wins
			}
			slot = (slot + 1) & m.mask
		}
		if m.slots[slot] < 0 {
			m.slots[slot] = int32(i)
		}
	}
	return m
}

// Get returns the value stored under key, or the zero value and false.
func (m *Map[V]) Get(key string) (V, bool) {
	slot := xxhash.Sum64String(key) & m.mask
	for m.slots[slot] >= 0 {
		if p := &m.pairs[m.slots[slot]]; p.Key == key {
			return p.Value, true
		}
		slot = (slot + 1) & m.mask
	}
	var zero V
	return zero, false
}

// Len returns the number of stored entries.
func (m *Map[V]) Len() int {
	return len(m.pairs)
}

// All returns a restartable iterator over all entries in construction order.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, p := range m.pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}
