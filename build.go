package scanmap

import (
	"fmt"

	"github.com/d1manson/scanmap/internal/lane"
	"github.com/d1manson/scanmap/internal/selector"

	scanerrors "github.com/d1manson/scanmap/errors"
)

// Pair is one key/value entry. Pairs keep their construction order for the
// whole life of the map; order carries no lookup semantics, it only fixes
// iteration order and the internal index space.
type Pair[V any] struct {
	Key   string
	Value V
}

// BuildError is returned by FromPairs on any construction failure. Reason is
// one of the sentinels in the scanmap/errors package (matchable with
// errors.Is on the BuildError itself), and Pairs is the caller's original
// input, handed back untouched so an alternative container can be built from
// it without re-collecting; see the fallback package.
type BuildError[V any] struct {
	Reason error
	Pairs  []Pair[V]
}

func (e *BuildError[V]) Error() string {
	return fmt.Sprintf("scanmap: build failed with %d pairs: %v", len(e.Pairs), e.Reason)
}

func (e *BuildError[V]) Unwrap() error {
	return e.Reason
}

// FromPairs builds an immutable Map from pairs. Keys must be distinct and
// must not contain NUL bytes (see the package documentation). The input
// slice is not retained: keys and values are copied into the map, and on
// failure the slice is returned inside the *BuildError.
//
// Construction fails with ErrEmptyInput for zero pairs, ErrCapacityExceeded
// when len(pairs) > maxPlanes x laneWidth, and ErrUnsolvable when no
// position list within the search depth and plane budget tells all keys
// apart (duplicate keys are a special case of ErrUnsolvable: no position
// list can separate them).
func FromPairs[V any](pairs []Pair[V], opts ...Option) (*Map[V], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, &BuildError[V]{Reason: err, Pairs: pairs}
	}

	if len(pairs) == 0 {
		return nil, &BuildError[V]{Reason: scanerrors.ErrEmptyInput, Pairs: pairs}
	}
	if len(pairs) > cfg.maxPlanes*cfg.laneWidth {
		return nil, &BuildError[V]{Reason: scanerrors.ErrCapacityExceeded, Pairs: pairs}
	}

	stored := make([]Pair[V], len(pairs))
	copy(stored, pairs)
	keys := make([]string, len(stored))
	for i, p := range stored {
		keys[i] = p.Key
	}

	numGroups := (len(keys) + cfg.laneWidth - 1) / cfg.laneWidth
	positions, err := selector.Positions(keys, selector.Config{
		// Every chosen position costs one plane per lane group, so the
		// round budget is however many positions fit the plane capacity.
		Budget:      cfg.maxPlanes / numGroups,
		SearchDepth: cfg.searchDepth,
		Workers:     cfg.workers,
	})
	if err != nil {
		return nil, &BuildError[V]{Reason: err, Pairs: pairs}
	}

	lt := materialize(keys, positions, cfg.laneWidth)

	return &Map[V]{
		pairs:     stored,
		numGroups: numGroups,
		numChars:  len(positions),
		width:     cfg.laneWidth,
		words:     lane.Words(cfg.laneWidth),
		positions: positions,
		planes:    lt.planes,
		valid:     lt.valid,
	}, nil
}
