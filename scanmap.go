package scanmap

import (
	"iter"

	"github.com/d1manson/scanmap/internal/lane"
	"github.com/d1manson/scanmap/internal/selector"
)

// Map is an immutable string-keyed map built by FromPairs. After construction
// it has no mutating operations and no internal mutability, so any number of
// goroutines may call Get, Len and All concurrently without locking.
type Map[V any] struct {
	pairs []Pair[V] // construction order; index space for candidate extraction

	numGroups int // ceil(len(pairs) / width)
	numChars  int // number of discriminating positions, >= 1
	width     int // lane width in slots
	words     int // width / 8

	positions []int    // discriminating byte offsets, in scan order
	planes    []uint64 // numGroups * numChars * words expected-byte words
	valid     []uint64 // numGroups * words live-slot masks
}

// Len returns the number of stored entries.
func (m *Map[V]) Len() int {
	return len(m.pairs)
}

// All returns an iterator over all entries in construction order. The
// iterator is restartable and read-only.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, p := range m.pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// queryByte returns the byte of query compared at offset pos. Past the end
// of the query it is the same length-keyed pad formula the builder used for
// short keys. An in-range NUL is also replaced by the pad byte: the scan
// treats zero as "past the end", which is why keys and queries must not
// contain NUL bytes. This mirrors the stored side, where a key's plane byte
// at offset == length is PadByte(len, len) == 0.
func (m *Map[V]) queryByte(query string, pos int) byte {
	if pos >= len(query) {
		return selector.PadByte(pos, len(query))
	}
	c := query[pos]
	if c == 0 {
		return selector.PadByte(pos, len(query))
	}
	return c
}

// Get returns the value stored under a key byte-identical to query, or the
// zero value and false. It allocates nothing, takes no locks, and performs
// the same fixed number of word operations for every query of a given map.
// There is no early exit on mismatch, so latency does not depend on query
// content.
func (m *Map[V]) Get(query string) (V, bool) {
	// At most one slot in the whole structure can survive the scan: the
	// chosen positions give every stored key a distinct byte tuple, the
	// query contributes exactly one byte per position, and the matcher is
	// exact. candidate therefore accumulates across groups without
	// ambiguity, and defaults to 0 when nothing survives (the final key
	// comparison rejects that coincidence along with all others).
	candidate := 0

	var state [lane.MaxWords]uint64
	words := m.words

	for g := 0; g < m.numGroups; g++ {
		for w := 0; w < words; w++ {
			state[w] = ^uint64(0)
		}

		base := g * m.numChars * words
		for s := 0; s < m.numChars; s++ {
			bb := lane.Broadcast(m.queryByte(query, m.positions[s]))
			plane := m.planes[base+s*words:]
			for w := 0; w < words; w++ {
				state[w] &= lane.MatchByte(plane[w], bb)
			}
		}

		for w := 0; w < words; w++ {
			if mask := state[w] & m.valid[g*words+w]; mask != 0 {
				candidate = g*m.width + w*lane.WordSlots + lane.First(mask)
			}
		}
	}

	// Mandatory confirmation: the scan proves uniqueness among stored keys
	// but says nothing about the query's bytes at untested offsets.
	if p := &m.pairs[candidate]; p.Key == query {
		return p.Value, true
	}
	var zero V
	return zero, false
}
