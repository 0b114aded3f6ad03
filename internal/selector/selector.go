// Package selector implements the build-time search for discriminating byte
// positions: an ordered list of offsets at which the stored keys, compared
// byte-for-byte, are all pairwise distinct.
//
// The search is greedy. Each round scores every unchosen candidate offset by
// how much key ambiguity would remain if it were appended to the list, and
// appends the cheapest one. A total score of zero means every key is fully
// distinguished. The number of rounds is capped by the caller's plane budget;
// running out of rounds is a construction failure, not a retry.
package selector

import (
	"math"
	"math/bits"

	"golang.org/x/sync/errgroup"

	scanerrors "github.com/d1manson/scanmap/errors"
)

// Config carries the capacity and search parameters for a selection run.
type Config struct {
	// Budget is the maximum number of positions that may be chosen. Derived
	// by the caller as maxPlanes / numLaneGroups, so that the final
	// positions x groups product fits the plane capacity.
	Budget int

	// SearchDepth caps the candidate offsets at [0, SearchDepth); offsets
	// past it are never examined even if some key is longer.
	SearchDepth int

	// Workers > 1 scores candidate offsets in parallel. Scoring is a pure
	// function of (keys, chosen, candidate), so rounds stay deterministic
	// regardless of worker count.
	Workers int
}

// PadByte is the synthesized byte compared at an offset beyond a key's end.
// It depends on both the offset and the key's length, so keys that are
// prefixes of one another ("key" / "key1") stop colliding once the position
// list reaches past the shorter key. A constant pad (e.g. zero) would leave
// them indistinguishable at every out-of-range offset.
func PadByte(pos, keyLen int) byte {
	return byte(pos - keyLen)
}

// byteAt returns key's byte at pos, or the pad byte when pos is past the end.
func byteAt(key string, pos int) byte {
	if pos < len(key) {
		return key[pos]
	}
	return PadByte(pos, len(key))
}

// agrees reports whether a and b are indistinguishable across every chosen
// position plus the candidate offset.
func agrees(a, b string, chosen []int, cand int) bool {
	if byteAt(a, cand) != byteAt(b, cand) {
		return false
	}
	for _, p := range chosen {
		if byteAt(a, p) != byteAt(b, p) {
			return false
		}
	}
	return true
}

// score computes the ambiguity cost of appending cand to chosen: for each key,
// the bit length of the count of other keys it still cannot be told apart
// from. A fully distinguished key costs 0; the total is 0 exactly when the
// tentative position list is a complete solution.
//
// Quadratic in the key count per call; the key count is tens and the routine
// runs once per build. It is a pure allocation-free function of its
// arguments, which keeps parallel scoring deterministic.
func score(keys []string, chosen []int, cand int) int {
	total := 0
	for _, self := range keys {
		dups := 0
		for _, other := range keys {
			if agrees(self, other, chosen, cand) {
				dups++
			}
		}
		total += bits.Len(uint(dups - 1)) // dups includes self
	}
	return total
}

// Positions returns an ordered list of discriminating positions for keys, or
// ErrUnsolvable if no complete list exists within cfg.Budget rounds.
// len(keys) must be >= 1; the caller validates input before calling.
func Positions(keys []string, cfg Config) ([]int, error) {
	maxLen := 0
	for _, k := range keys {
		if len(k) > maxLen {
			maxLen = len(k)
		}
	}
	if maxLen > cfg.SearchDepth {
		maxLen = cfg.SearchDepth
	}
	if maxLen == 0 {
		// All keys are empty. A lone "" needs no discriminating bytes, but
		// the scan loop wants at least one position, so probe offset 0.
		// Two or more empty keys are duplicates and fail below as usual.
		maxLen = 1
	}

	chosen := make([]int, 0, cfg.Budget)
	taken := make([]bool, maxLen)
	scores := make([]int, maxLen)

	for round := 0; round < cfg.Budget; round++ {
		if err := scoreRound(keys, chosen, taken, scores, cfg.Workers); err != nil {
			return nil, err
		}

		best := 0
		for cand := 1; cand < maxLen; cand++ {
			if scores[cand] < scores[best] {
				best = cand
			}
		}
		if taken[best] {
			// Every offset is already chosen and none reached score zero;
			// more rounds cannot help.
			break
		}
		chosen = append(chosen, best)
		taken[best] = true
		if scores[best] == 0 {
			return chosen, nil
		}
	}

	return nil, scanerrors.ErrUnsolvable
}

// scoreRound fills scores[cand] for every candidate offset. Chosen offsets
// score math.MaxInt so they are never re-selected.
func scoreRound(keys []string, chosen []int, taken []bool, scores []int, workers int) error {
	if workers <= 1 {
		for cand := range scores {
			if taken[cand] {
				scores[cand] = math.MaxInt
				continue
			}
			scores[cand] = score(keys, chosen, cand)
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for cand := range scores {
		if taken[cand] {
			scores[cand] = math.MaxInt
			continue
		}
		g.Go(func() error {
			scores[cand] = score(keys, chosen, cand)
			return nil
		})
	}
	return g.Wait()
}
