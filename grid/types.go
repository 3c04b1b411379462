// Package grid defines core types, options, and sentinel errors
// for the grid subpackage of github.com/katalvlaran/gridsearch.
package grid

import (
	"errors"
	"fmt"
	"math/rand"
)

// Sentinel errors for grid construction and mutation.
var (
	// ErrDimensions indicates width or height below the 1×1 minimum.
	ErrDimensions = errors.New("grid: width and height must be at least 1")
	// ErrOutOfBounds indicates a position outside [0,width)×[0,height).
	ErrOutOfBounds = errors.New("grid: position out of bounds")
	// ErrSameStartTarget indicates start and target share a cell.
	ErrSameStartTarget = errors.New("grid: start and target must differ")
	// ErrWallPosition indicates an explicit wall placed on start or target.
	ErrWallPosition = errors.New("grid: wall may not cover start or target")
	// ErrProbability indicates a spawn probability outside [0,1].
	ErrProbability = errors.New("grid: spawn probability must be within [0,1]")
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("grid: invalid option supplied")
)

// Position is an integer cell coordinate. Equality is structural;
// Position is the unique key for explored and frontier bookkeeping.
type Position struct {
	X, Y int
}

// String renders the position as "x,y".
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Less orders positions row-major (Y first, then X).
// Used wherever a deterministic enumeration of positions is required.
func (p Position) Less(q Position) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}

	return p.X < q.X
}

// CellState classifies a single grid cell.
type CellState uint8

const (
	// Empty is a walkable cell not otherwise classified.
	Empty CellState = iota
	// Wall is a static obstacle, fixed at grid construction.
	Wall
	// DynamicObstacle is an obstacle added during a search run.
	// Dynamic obstacles are only ever added, never removed, until
	// ResetDynamicObstacles is called between runs.
	DynamicObstacle
	// Start marks the search origin; always walkable.
	Start
	// Target marks the search goal; always walkable.
	Target
)

// String implements fmt.Stringer for CellState.
func (c CellState) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case DynamicObstacle:
		return "DynamicObstacle"
	case Start:
		return "Start"
	case Target:
		return "Target"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(c))
	}
}

// Option configures grid construction via functional arguments.
// An invalid Option is recorded internally and surfaced by New.
type Option func(*gridOptions)

// gridOptions collects construction-time parameters.
type gridOptions struct {
	walls       []Position
	randomWalls int
	rng         *rand.Rand

	// internal error recorded during option parsing
	err error
}

// WithWalls places explicit static walls. Walls covering start or
// target are rejected by New with ErrWallPosition; walls out of bounds
// are rejected with ErrOutOfBounds.
func WithWalls(ps ...Position) Option {
	return func(o *gridOptions) {
		o.walls = append(o.walls, ps...)
	}
}

// WithRandomWalls scatters count walls at random empty cells, skipping
// start and target. Placement attempts are bounded (10× count), so a
// saturated grid simply receives fewer walls.
//
//	count < 0: invalid option → ErrOptionViolation
//	rng == nil: invalid option → ErrOptionViolation
func WithRandomWalls(count int, rng *rand.Rand) Option {
	return func(o *gridOptions) {
		switch {
		case count < 0:
			o.err = fmt.Errorf("%w: random wall count cannot be negative (%d)", ErrOptionViolation, count)
		case rng == nil:
			o.err = fmt.Errorf("%w: random wall source must not be nil", ErrOptionViolation)
		default:
			o.randomWalls = count
			o.rng = rng
		}
	}
}
