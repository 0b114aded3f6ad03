package scanmap

import (
	"github.com/d1manson/scanmap/internal/lane"

	scanerrors "github.com/d1manson/scanmap/errors"
)

const (
	// defaultMaxPlanes bounds the total number of (lane group x position)
	// test planes. Together with the lane width it fixes capacity:
	// at most maxPlanes x laneWidth keys, fewer when more than one
	// position is needed. 16 planes x 16 slots comfortably covers the
	// intended tens-of-keys regime.
	defaultMaxPlanes = 16

	// defaultLaneWidth is the vector width in bytes. 16 matches a single
	// SSE/NEON register; with the SWAR engine it is two uint64 words.
	defaultLaneWidth = 16

	// defaultSearchDepth caps how far into each key the selector looks for
	// discriminating bytes. Keys whose distinguishing content lies past
	// this prefix cannot be solved.
	defaultSearchDepth = 32
)

// Option is a functional option for configuring construction.
type Option func(*config)

type config struct {
	maxPlanes   int
	laneWidth   int
	searchDepth int
	workers     int
}

func defaultConfig() *config {
	return &config{
		maxPlanes:   defaultMaxPlanes,
		laneWidth:   defaultLaneWidth,
		searchDepth: defaultSearchDepth,
		workers:     1, // Single-threaded scoring; use WithWorkers(n) to parallelize
	}
}

// validate checks the configuration before any work is done. Configuration
// errors are caller bugs, not properties of the input pairs, but they are
// still surfaced through BuildError so the caller gets its pairs back.
func (c *config) validate() error {
	if !lane.SupportedWidth(c.laneWidth) {
		return scanerrors.ErrBadLaneWidth
	}
	if c.maxPlanes < 1 {
		return scanerrors.ErrBadMaxPlanes
	}
	if c.searchDepth < 1 {
		return scanerrors.ErrBadSearchDepth
	}
	if c.workers < 1 {
		return scanerrors.ErrBadWorkers
	}
	return nil
}

// WithMaxPlanes sets the maximum number of test planes the map may
// materialize. Capacity is maxPlanes x laneWidth keys, and the
// discriminating-position budget is maxPlanes / ceil(keys / laneWidth), so
// raising this trades memory and per-lookup work for harder key sets.
func WithMaxPlanes(n int) Option {
	return func(c *config) {
		c.maxPlanes = n
	}
}

// WithLaneWidth sets the vector width in bytes: 8, 16, 32 or 64.
// Wider lanes fit more keys per scan but cost more per position test.
func WithLaneWidth(w int) Option {
	return func(c *config) {
		c.laneWidth = w
	}
}

// WithSearchDepth sets how many leading bytes of each key the selector may
// test. Default 32.
func WithSearchDepth(d int) Option {
	return func(c *config) {
		c.searchDepth = d
	}
}

// WithWorkers sets the number of goroutines used to score candidate
// positions during construction. The result is identical for any worker
// count; this only speeds up builds with many long keys. Default 1.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}
