// Package lane provides the SWAR (SIMD-within-a-register) primitives used by
// the scan engine: byte broadcast, exact byte-equality matching over 8-byte
// words, and extraction of the single surviving slot from a match mask.
//
// Masks follow the swiss-table bitset convention: one byte per slot, 0x80 if
// the slot is in the set, 0x00 otherwise. A lane of W slots is W/8 words.
package lane

import "math/bits"

const (
	// WordSlots is the number of slots covered by one uint64 word.
	WordSlots = 8

	// MaxWidth is the widest supported lane, in slots. Lane state for any
	// supported width fits in a fixed [MaxWidth / WordSlots]uint64 array,
	// so the scan loop never allocates.
	MaxWidth = 64

	// MaxWords is the word count of the widest supported lane.
	MaxWords = MaxWidth / WordSlots

	lsb = 0x0101010101010101
	msb = 0x8080808080808080
)

// SupportedWidth reports whether w is a lane width the engine can scan:
// a whole number of words, at least one.
func SupportedWidth(w int) bool {
	switch w {
	case 8, 16, 32, 64:
		return true
	}
	return false
}

// Words returns the number of uint64 words in a lane of width w slots.
func Words(w int) int {
	return w / WordSlots
}

// Broadcast replicates b into every byte of a word.
func Broadcast(b byte) uint64 {
	return lsb * uint64(b)
}

// MatchZero returns a mask with 0x80 set in every byte of x that is zero.
//
// This is the exact (borrow-free) zero-byte detector, not the cheaper
// ((x-lsb) &^ x) & msb variant used by swiss tables. The cheaper variant
// produces false positives on bytes adjacent to a real match, which swiss
// tables absorb because every candidate slot is key-checked. Here only a
// single candidate survives the scan and gets the final key comparison, so
// a false positive in one word could shadow the real match in another and
// turn a hit into a miss. Biasing every byte to >= 0x80 before the subtract
// keeps each byte's borrow to itself, making the detector exact.
func MatchZero(x uint64) uint64 {
	return ^(((x | msb) - lsb) | x) & msb
}

// MatchByte returns a mask with 0x80 set in every byte of word equal to the
// broadcast byte bb (as produced by Broadcast).
func MatchByte(word, bb uint64) uint64 {
	return MatchZero(word ^ bb)
}

// ValidMask returns the mask of live slots for one word, given how many of
// its slots hold real entries. n must be in [0, WordSlots].
func ValidMask(n int) uint64 {
	if n >= WordSlots {
		return msb
	}
	return msb >> ((WordSlots - n) * 8)
}

// First returns the slot index of the lowest set byte in mask, or WordSlots
// if the mask is empty. This is the primary extraction strategy: a single
// trailing-zeros instruction, portable across lane widths.
func First(mask uint64) int {
	return bits.TrailingZeros64(mask) >> 3
}

// FirstByRankMax returns the same result as First using a running-maximum
// reduction: each slot carries a descending
// rank (WordSlots-i for slot i), the match mask selects surviving ranks, and
// WordSlots minus the maximum surviving rank is the lowest surviving slot.
// On architectures without a cheap mask-extraction instruction the rank
// vector can live in a SIMD register for the whole scan; as plain Go it has
// no advantage over First and is kept as a documented, tested alternative.
func FirstByRankMax(mask uint64) int {
	maxRank := 0
	for i := 0; i < WordSlots; i++ {
		rank := WordSlots - i
		if mask&(0x80<<(i*8)) != 0 && rank > maxRank {
			maxRank = rank
		}
	}
	return WordSlots - maxRank
}
