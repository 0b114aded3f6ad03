package scanmap_test

import (
	"fmt"
	"testing"

	"github.com/d1manson/scanmap"
	"github.com/d1manson/scanmap/fallback"
)

// benchKeys is a realistic schema-dispatch key set: short identifier-style
// names with heavy prefix sharing.
var benchKeys = []string{
	"id", "name", "email", "created_at", "updated_at", "deleted_at",
	"status", "kind", "owner_id", "parent_id", "title", "body",
	"published", "version", "locale", "slug", "summary", "content",
	"author_id", "category", "tags", "rating", "views", "flags",
}

func benchPairs() []scanmap.Pair[int] {
	pairs := make([]scanmap.Pair[int], len(benchKeys))
	for i, k := range benchKeys {
		pairs[i] = scanmap.Pair[int]{Key: k, Value: i}
	}
	return pairs
}

func BenchmarkBuild(b *testing.B) {
	pairs := benchPairs()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := scanmap.FromPairs(pairs); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetHit(b *testing.B) {
	for _, width := range []int{8, 16, 32, 64} {
		b.Run(fmt.Sprintf("width_%d", width), func(b *testing.B) {
			m, err := scanmap.FromPairs(benchPairs(), scanmap.WithLaneWidth(width))
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, ok := m.Get(benchKeys[i%len(benchKeys)]); !ok {
					b.Fatal("miss on stored key")
				}
			}
		})
	}
}

func BenchmarkGetMiss(b *testing.B) {
	m, err := scanmap.FromPairs(benchPairs())
	if err != nil {
		b.Fatal(err)
	}
	misses := []string{"missing", "created", "statusx", "zzz", "author_idx"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := m.Get(misses[i%len(misses)]); ok {
			b.Fatal("hit on absent key")
		}
	}
}

// BenchmarkGetNativeMap and BenchmarkGetFallback are the comparison
// baselines: the built-in map and the xxhash fallback on the same key set.
func BenchmarkGetNativeMap(b *testing.B) {
	m := make(map[string]int, len(benchKeys))
	for i, k := range benchKeys {
		m[k] = i
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, ok := m[benchKeys[i%len(benchKeys)]]; !ok {
			b.Fatal("miss on stored key")
		}
	}
}

func BenchmarkGetFallback(b *testing.B) {
	m := fallback.FromPairs(benchPairs())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, ok := m.Get(benchKeys[i%len(benchKeys)]); !ok {
			b.Fatal("miss on stored key")
		}
	}
}
