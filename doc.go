// Package scanmap implements an immutable, fixed-capacity string map for very
// small key sets (tens of keys) where lookup latency dominates construction
// cost: schema and field-name dispatch tables, config lookups and similar.
//
// Instead of hashing, construction finds a short list of byte offsets that
// together distinguish every key, then lookups compare the query's bytes at
// those offsets against all entries at once using word-parallel (SWAR)
// equality scans, finishing with one exact key comparison.
//
// # Basic Usage
//
// Building a map:
//
//	m, err := scanmap.FromPairs([]scanmap.Pair[int]{
//	    {Key: "id", Value: 0},
//	    {Key: "name", Value: 1},
//	    {Key: "created_at", Value: 2},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Querying:
//
//	v, ok := m.Get("name")
//
// Construction can fail: for too many keys, or for key sets whose
// distinguishing bytes do not fit the configured plane budget. The returned
// *BuildError carries the original pairs so a different container can be
// built from them directly:
//
//	m, err := scanmap.FromPairs(pairs)
//	if err != nil {
//	    var be *scanmap.BuildError[int]
//	    errors.As(err, &be)
//	    fb := fallback.FromPairs(be.Pairs) // hash-based, never fails
//	}
//
// # Restrictions
//
// Keys and queries must not contain NUL bytes: the scan engine uses a zero
// byte to mean "offset past the end of the string". Keys must be distinct,
// and their distinguishing bytes must lie within the configured search depth
// (default 32 bytes). The map is fixed at construction: no insert, delete or
// resize.
//
// # Package Structure
//
//   - Public API: build.go (FromPairs, Pair, BuildError), scanmap.go (Map,
//     Get, Len, All)
//   - Configuration: options.go (Option, With* functions)
//   - Scan layout: layout.go (test planes, validity masks)
//   - Position search: internal/selector (greedy discriminating-offset
//     selection, optionally parallel)
//   - Word primitives: internal/lane (SWAR matching and slot extraction)
//   - Fallback container: fallback/ (immutable hash map, same read API)
package scanmap
