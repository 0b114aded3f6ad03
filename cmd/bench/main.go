// Bench is a benchmarking tool for measuring scanmap build time and query
// latency against baseline containers on the same key set.
//
// Usage:
//
//	go run ./cmd/bench -keys 32 -width 16 -planes 32 -queries 5000000
//
// Flags:
//
//	-keys     Number of keys to store (default: 32)
//	-width    Lane width in bytes: 8, 16, 32 or 64 (default: 16)
//	-planes   Maximum test planes (default: 32)
//	-queries  Number of lookups per measurement loop (default: 5,000,000)
//	-miss     Fraction of lookups that are misses, 0..1 (default: 0.5)
//	-workers  Parallel scoring workers for the build (default: 1)
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	"github.com/d1manson/scanmap"
	"github.com/d1manson/scanmap/fallback"
)

// fieldStems generate identifier-style keys with shared prefixes, the shape
// scanmap is built for.
var fieldStems = []string{
	"id", "name", "email", "created", "updated", "deleted", "status",
	"kind", "owner", "parent", "title", "body", "published", "version",
	"locale", "slug", "summary", "content", "author", "category",
}

func makeKeys(n int, rng *rand.Rand) []string {
	keys := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(keys) < n {
		stem := fieldStems[rng.IntN(len(fieldStems))]
		key := stem
		switch rng.IntN(3) {
		case 0:
			key = stem + "_id"
		case 1:
			key = fmt.Sprintf("%s_%c", stem, 'a'+rng.IntN(26))
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

func makeMisses(n int, rng *rand.Rand, seen map[string]bool) []string {
	misses := make([]string, 0, n)
	for len(misses) < n {
		key := fmt.Sprintf("%s_%c%c", fieldStems[rng.IntN(len(fieldStems))],
			'a'+rng.IntN(26), 'a'+rng.IntN(26))
		if !seen[key] {
			misses = append(misses, key)
		}
	}
	return misses
}

func main() {
	keysFlag := flag.Int("keys", 32, "number of keys")
	widthFlag := flag.Int("width", 16, "lane width in bytes (8, 16, 32 or 64)")
	planesFlag := flag.Int("planes", 32, "maximum test planes")
	queriesFlag := flag.Int("queries", 5_000_000, "lookups per measurement loop")
	missFlag := flag.Float64("miss", 0.5, "fraction of lookups that are misses")
	workersFlag := flag.Int("workers", 1, "parallel scoring workers")
	flag.Parse()

	rng := rand.New(rand.NewPCG(0x5ca9, 0x3a9))

	fmt.Println("Generating keys...")
	keys := makeKeys(*keysFlag, rng)
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		seen[k] = true
	}

	pairs := make([]scanmap.Pair[int], len(keys))
	for i, k := range keys {
		pairs[i] = scanmap.Pair[int]{Key: k, Value: i}
	}

	fmt.Println("Building scanmap...")
	buildStart := time.Now()
	m, err := scanmap.FromPairs(pairs,
		scanmap.WithLaneWidth(*widthFlag),
		scanmap.WithMaxPlanes(*planesFlag),
		scanmap.WithWorkers(*workersFlag),
	)
	buildDuration := time.Since(buildStart)
	if err != nil {
		fmt.Printf("Build failed: %v\n", err)
		fmt.Println("Retry with a larger -planes or -width; falling back is what the fallback package is for.")
		os.Exit(1)
	}
	fmt.Printf("  built %d keys in %v\n", m.Len(), buildDuration)

	fb := fallback.FromPairs(pairs)
	native := make(map[string]int, len(pairs))
	for _, p := range pairs {
		native[p.Key] = p.Value
	}

	// Pre-generate the query stream so the loops below measure lookups,
	// not rng calls.
	numQueries := *queriesFlag
	misses := makeMisses(len(keys), rng, seen)
	queries := make([]string, numQueries)
	for i := range queries {
		if rng.Float64() < *missFlag {
			queries[i] = misses[rng.IntN(len(misses))]
		} else {
			queries[i] = keys[rng.IntN(len(keys))]
		}
	}

	fmt.Println("Querying scanmap...")
	hits := 0
	start := time.Now()
	for _, q := range queries {
		if _, ok := m.Get(q); ok {
			hits++
		}
	}
	report("scanmap", time.Since(start), numQueries, hits)

	fmt.Println("Querying fallback (xxhash open addressing)...")
	hits = 0
	start = time.Now()
	for _, q := range queries {
		if _, ok := fb.Get(q); ok {
			hits++
		}
	}
	report("fallback", time.Since(start), numQueries, hits)

	fmt.Println("Querying native map...")
	hits = 0
	start = time.Now()
	for _, q := range queries {
		if _, ok := native[q]; ok {
			hits++
		}
	}
	report("native", time.Since(start), numQueries, hits)

	// Hash-cost floors: the cheapest any hash-based container could be is
	// one key hash per lookup, so time the bare hashes over the same
	// query stream.
	fmt.Println("Hashing query stream (floors)...")
	var sink uint64
	start = time.Now()
	for _, q := range queries {
		sink ^= xxh3.HashString(q)
	}
	report("xxh3 floor", time.Since(start), numQueries, 0)

	start = time.Now()
	for _, q := range queries {
		h, _ := murmur3.Sum128([]byte(q))
		sink ^= h
	}
	report("murmur3 floor", time.Since(start), numQueries, 0)
	_ = sink
}

func report(name string, d time.Duration, n, hits int) {
	perOp := float64(d.Nanoseconds()) / float64(n)
	fmt.Printf("  %-14s %8.2f ns/op  (%d ops in %v, %d hits)\n", name, perOp, n, d, hits)
}
