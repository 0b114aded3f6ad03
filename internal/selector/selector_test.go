package selector

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	scanerrors "github.com/d1manson/scanmap/errors"
)

// tupleOf renders key's bytes at positions, pad formula included, for
// distinctness checks.
func tupleOf(key string, positions []int) string {
	out := make([]byte, len(positions))
	for i, p := range positions {
		out[i] = byteAt(key, p)
	}
	return fmt.Sprintf("%x", out)
}

// verifyDistinct fails the test unless positions give every key a distinct
// byte tuple, which is the property the selector exists to provide.
func verifyDistinct(t *testing.T, keys []string, positions []int) {
	t.Helper()
	seen := make(map[string]string, len(keys))
	for _, k := range keys {
		tuple := tupleOf(k, positions)
		if prev, ok := seen[tuple]; ok {
			t.Fatalf("keys %q and %q collide on positions %v", prev, k, positions)
		}
		seen[tuple] = k
	}
}

func defaultTestConfig() Config {
	return Config{Budget: 16, SearchDepth: 32, Workers: 1}
}

func TestPositionsDistinguishAllKeys(t *testing.T) {
	cases := []struct {
		name string
		keys []string
	}{
		{"single", []string{"only"}},
		{"single_empty", []string{""}},
		{"two", []string{"a", "b"}},
		{"field_names", []string{
			"id", "name", "email", "created_at", "updated_at", "deleted_at",
			"status", "kind", "owner_id", "parent_id", "title", "body",
		}},
		{"shared_prefixes", []string{
			"config", "configuration", "confirm", "confirmed", "conf",
		}},
		{"prefix_chain", []string{"key", "key1", "key1longer", "now4"}},
		{"differ_only_late", []string{
			"prefix_aaaa", "prefix_aaab", "prefix_aaba", "prefix_abaa",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			positions, err := Positions(tc.keys, defaultTestConfig())
			if err != nil {
				t.Fatalf("Positions: %v", err)
			}
			if len(positions) == 0 {
				t.Fatal("Positions returned an empty list")
			}
			verifyDistinct(t, tc.keys, positions)
		})
	}
}

func TestPositionsSingleKeyUsesOnePosition(t *testing.T) {
	positions, err := Positions([]string{"anything"}, defaultTestConfig())
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if len(positions) != 1 {
		t.Errorf("single key should need exactly 1 position, got %v", positions)
	}
}

// TestPositionsBudgetBoundary mirrors the canonical unsolvable set: the four
// keys differ pairwise only at offsets 1, 2 and 3, so any complete position
// list has at least 3 entries. A budget of 2 must fail, 3 must succeed.
func TestPositionsBudgetBoundary(t *testing.T) {
	keys := []string{"aaaa", "abaa", "aaca", "aaad"}

	cfg := defaultTestConfig()
	cfg.Budget = 2
	if _, err := Positions(keys, cfg); !errors.Is(err, scanerrors.ErrUnsolvable) {
		t.Fatalf("budget 2: got %v, want ErrUnsolvable", err)
	}

	cfg.Budget = 3
	positions, err := Positions(keys, cfg)
	if err != nil {
		t.Fatalf("budget 3: %v", err)
	}
	if len(positions) != 3 {
		t.Errorf("budget 3: got %d positions %v, want 3", len(positions), positions)
	}
	verifyDistinct(t, keys, positions)
}

func TestPositionsDuplicateKeysUnsolvable(t *testing.T) {
	keys := []string{"same", "same", "other"}
	if _, err := Positions(keys, defaultTestConfig()); !errors.Is(err, scanerrors.ErrUnsolvable) {
		t.Fatalf("got %v, want ErrUnsolvable", err)
	}
}

func TestPositionsSearchDepthLimits(t *testing.T) {
	// Keys identical within the first 4 bytes, differing at offset 4.
	keys := []string{"aaaaX", "aaaaY"}

	cfg := defaultTestConfig()
	cfg.SearchDepth = 4
	// Within depth 4 the keys still differ via the pad formula? They have
	// equal length, so pads agree everywhere too: unsolvable.
	if _, err := Positions(keys, cfg); !errors.Is(err, scanerrors.ErrUnsolvable) {
		t.Fatalf("depth 4: got %v, want ErrUnsolvable", err)
	}

	cfg.SearchDepth = 5
	positions, err := Positions(keys, cfg)
	if err != nil {
		t.Fatalf("depth 5: %v", err)
	}
	verifyDistinct(t, keys, positions)
}

// TestPositionsPadDistinguishesLengths checks that keys sharing a full prefix
// are separated by the length-keyed pad rather than colliding on a constant.
func TestPositionsPadDistinguishesLengths(t *testing.T) {
	keys := []string{"key", "key1", "key1longer"}
	positions, err := Positions(keys, defaultTestConfig())
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	verifyDistinct(t, keys, positions)
}

func TestPadByte(t *testing.T) {
	cases := []struct {
		pos, keyLen int
		want        byte
	}{
		{0, 0, 0},
		{3, 3, 0},
		{4, 3, 1},
		{10, 3, 7},
		{31, 0, 31},
	}
	for _, tc := range cases {
		if got := PadByte(tc.pos, tc.keyLen); got != tc.want {
			t.Errorf("PadByte(%d, %d) = %d, want %d", tc.pos, tc.keyLen, got, tc.want)
		}
	}
}

// TestParallelScoringMatchesSerial runs the same selection with 1 and 8
// workers; the chosen positions must be identical since scoring is pure.
func TestParallelScoringMatchesSerial(t *testing.T) {
	keys := []string{
		"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta",
		"iota", "kappa", "lambda", "mu", "nu", "xi", "omicron", "pi",
		"rho", "sigma", "tau", "upsilon", "phi", "chi", "psi", "omega",
	}

	serialCfg := defaultTestConfig()
	serial, err := Positions(keys, serialCfg)
	if err != nil {
		t.Fatalf("serial: %v", err)
	}

	parallelCfg := defaultTestConfig()
	parallelCfg.Workers = 8
	parallel, err := Positions(keys, parallelCfg)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	if !slices.Equal(serial, parallel) {
		t.Errorf("worker counts disagree: serial %v, parallel %v", serial, parallel)
	}
	verifyDistinct(t, keys, parallel)
}

func TestScoreZeroMeansSolved(t *testing.T) {
	keys := []string{"ax", "bx", "cx"}
	// Offset 0 alone distinguishes all three keys.
	if got := score(keys, nil, 0); got != 0 {
		t.Errorf("score at offset 0 = %d, want 0", got)
	}
	// Offset 1 distinguishes nothing: each key sees 2 indistinguishable
	// others, bits.Len(2) == 2, total 3 keys x 2.
	if got := score(keys, nil, 1); got != 6 {
		t.Errorf("score at offset 1 = %d, want 6", got)
	}
}
