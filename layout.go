package scanmap

import (
	"github.com/d1manson/scanmap/internal/lane"
	"github.com/d1manson/scanmap/internal/selector"
)

// layout is the materialized scan data: for every (lane group, position)
// pair, one test plane of laneWidth expected bytes, plus a per-group
// validity mask marking which slots hold real entries.
//
// Planes and masks are stored as flat []uint64 so the scan loop is pure word
// loads; slot i of a plane is byte i%8 of word i/8. Both slices are sized
// once here and never grow. Plane words for group g, position index s start
// at (g*numChars+s)*words; validity words for group g start at g*words.
type layout struct {
	planes []uint64
	valid  []uint64
}

// materialize builds the test planes and validity masks for keys under the
// chosen positions. Slots past the end of the key list are left zero in the
// planes and excluded by the validity mask; a query byte can legitimately be
// zero (the pad formula yields 0 at offset == length), so the mask, not the
// plane contents, is what keeps dead slots from matching.
func materialize(keys []string, positions []int, width int) layout {
	words := lane.Words(width)
	numGroups := (len(keys) + width - 1) / width

	lt := layout{
		planes: make([]uint64, numGroups*len(positions)*words),
		valid:  make([]uint64, numGroups*words),
	}

	for g := 0; g < numGroups; g++ {
		start := g * width
		end := min(start+width, len(keys))

		for s, p := range positions {
			plane := lt.planes[(g*len(positions)+s)*words:]
			for i, k := range keys[start:end] {
				b := uint64(selector.PadByte(p, len(k)))
				if p < len(k) {
					b = uint64(k[p])
				}
				plane[i/lane.WordSlots] |= b << ((i % lane.WordSlots) * 8)
			}
		}

		n := end - start
		for w := 0; w < words; w++ {
			lt.valid[g*words+w] = lane.ValidMask(n - w*lane.WordSlots)
		}
	}

	return lt
}
