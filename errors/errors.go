// Package errors defines all exported error sentinels for the scanmap library.
//
// This is the single source of truth for error values. Both the top-level
// scanmap package and internal packages import from here, ensuring errors.Is
// checks work across package boundaries.
package errors

import "errors"

// Build errors. Every construction failure wraps exactly one of these.
var (
	ErrEmptyInput       = errors.New("scanmap: cannot build map with zero pairs")
	ErrCapacityExceeded = errors.New("scanmap: pair count exceeds maxPlanes x laneWidth capacity")
	ErrUnsolvable       = errors.New("scanmap: no discriminating position set found within plane budget")
)

// Configuration errors.
var (
	ErrBadLaneWidth   = errors.New("scanmap: lane width must be 8, 16, 32 or 64")
	ErrBadMaxPlanes   = errors.New("scanmap: max planes must be at least 1")
	ErrBadSearchDepth = errors.New("scanmap: search depth must be at least 1")
	ErrBadWorkers     = errors.New("scanmap: worker count must be at least 1")
)
