// Package grid models the 2-D search environment: static walls fixed at
// construction, dynamic obstacles added mid-run, and the fixed
// 8-direction neighbor expansion order shared by every strategy.
package grid

import (
	"fmt"
	"math"
	"sort"
)

// randomWallAttemptFactor bounds random wall placement: at most
// factor×count draws before giving up on a saturated grid.
const randomWallAttemptFactor = 10

// expansionOffsets is the fixed neighbor order: the four axis
// directions clockwise from Up, then the four diagonals
// {BottomRight, TopLeft, TopRight, BottomLeft}. The order determines
// tie-break behavior of every strategy and must never be reordered.
var expansionOffsets = [8][2]int{
	{0, -1},  // Up
	{1, 0},   // Right
	{0, 1},   // Down
	{1, 1},   // BottomRight
	{-1, 0},  // Left
	{-1, -1}, // TopLeft
	{1, -1},  // TopRight
	{-1, 1},  // BottomLeft
}

// Grid is the search environment. Width, height, start, target, and
// walls are immutable after New; only the dynamic obstacle set mutates,
// and only through AddDynamicObstacle / ResetDynamicObstacles.
type Grid struct {
	width, height int
	start, target Position
	walls         map[Position]bool
	dynamic       map[Position]bool
}

// New constructs a Grid of width×height with the given start and
// target, applying any number of functional Options.
// Returns ErrDimensions, ErrOutOfBounds, ErrSameStartTarget,
// ErrWallPosition, or ErrOptionViolation for invalid configuration.
// Complexity: O(W×H) worst case (random wall placement), O(walls) otherwise.
func New(width, height int, start, target Position, opts ...Option) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %d×%d", ErrDimensions, width, height)
	}

	// Build options and catch any invalid ones immediately.
	var o gridOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	g := &Grid{
		width:   width,
		height:  height,
		start:   start,
		target:  target,
		walls:   make(map[Position]bool),
		dynamic: make(map[Position]bool),
	}

	// Validate endpoints before any wall placement.
	if !g.InBounds(start) {
		return nil, fmt.Errorf("%w: start %s outside %d×%d", ErrOutOfBounds, start, width, height)
	}
	if !g.InBounds(target) {
		return nil, fmt.Errorf("%w: target %s outside %d×%d", ErrOutOfBounds, target, width, height)
	}
	if start == target {
		return nil, fmt.Errorf("%w: both at %s", ErrSameStartTarget, start)
	}

	// Explicit walls: strict — any misplacement is a configuration error.
	for _, p := range o.walls {
		if !g.InBounds(p) {
			return nil, fmt.Errorf("%w: wall %s outside %d×%d", ErrOutOfBounds, p, width, height)
		}
		if p == start || p == target {
			return nil, fmt.Errorf("%w: wall at %s", ErrWallPosition, p)
		}
		g.walls[p] = true
	}

	// Random walls: lenient — occupied draws are retried up to the
	// attempt bound, then placement stops.
	if o.randomWalls > 0 {
		added, attempts := 0, 0
		for added < o.randomWalls && attempts < o.randomWalls*randomWallAttemptFactor {
			p := Position{X: o.rng.Intn(width), Y: o.rng.Intn(height)}
			if !g.walls[p] && p != start && p != target {
				g.walls[p] = true
				added++
			}
			attempts++
		}
	}

	return g, nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Start returns the start position.
func (g *Grid) Start() Position { return g.start }

// Target returns the target position.
func (g *Grid) Target() Position { return g.target }

// InBounds reports whether p lies within [0,width)×[0,height).
// Complexity: O(1).
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// StateAt classifies the cell at p. Out-of-bounds positions report
// Wall, matching IsWalkable's treatment of the boundary.
// Complexity: O(1).
func (g *Grid) StateAt(p Position) CellState {
	switch {
	case !g.InBounds(p):
		return Wall
	case p == g.start:
		return Start
	case p == g.target:
		return Target
	case g.walls[p]:
		return Wall
	case g.dynamic[p]:
		return DynamicObstacle
	default:
		return Empty
	}
}

// IsWalkable reports whether p can be traversed: false if p is out of
// bounds, a Wall, or a DynamicObstacle. Start and Target are always
// walkable. Complexity: O(1).
func (g *Grid) IsWalkable(p Position) bool {
	return g.InBounds(p) && !g.walls[p] && !g.dynamic[p]
}

// Neighbors returns the walkable, in-bounds cells adjacent to p in the
// fixed expansion order {Up, Right, Down, BottomRight, Left, TopLeft,
// TopRight, BottomLeft}. Complexity: O(1) (eight probes).
func (g *Grid) Neighbors(p Position) []Position {
	out := make([]Position, 0, len(expansionOffsets))
	for _, d := range expansionOffsets {
		n := Position{X: p.X + d[0], Y: p.Y + d[1]}
		if g.IsWalkable(n) {
			out = append(out, n)
		}
	}

	return out
}

// StepCost returns the traversal cost of the move a→b: 1 for an axis
// move, √2 for a diagonal move. Both cells are assumed to be
// 8-adjacent; the caller (the engine) only ever passes neighbor pairs.
func (g *Grid) StepCost(a, b Position) float64 {
	if a.X != b.X && a.Y != b.Y {
		return math.Sqrt2
	}

	return 1
}

// AddDynamicObstacle converts the Empty cell at p into a
// DynamicObstacle. It reports false without mutating when p is out of
// bounds, the start, the target, or already non-empty. Complexity: O(1).
func (g *Grid) AddDynamicObstacle(p Position) bool {
	if g.StateAt(p) != Empty {
		return false
	}
	g.dynamic[p] = true

	return true
}

// ResetDynamicObstacles converts every DynamicObstacle back to Empty.
// Static walls are preserved. Used between independent runs.
func (g *Grid) ResetDynamicObstacles() {
	g.dynamic = make(map[Position]bool)
}

// Walls returns the static wall positions in row-major order.
func (g *Grid) Walls() []Position {
	return sortedPositions(g.walls)
}

// DynamicObstacles returns the current dynamic obstacle positions in
// row-major order.
func (g *Grid) DynamicObstacles() []Position {
	return sortedPositions(g.dynamic)
}

// emptyCells returns every Empty cell — which by definition excludes
// the start, the target, walls, and dynamic obstacles — enumerated in
// x-major order. The deterministic order is what makes a fixed-seed
// spawn sequence reproducible.
func (g *Grid) emptyCells() []Position {
	out := make([]Position, 0, g.width*g.height)
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			p := Position{X: x, Y: y}
			if g.StateAt(p) == Empty {
				out = append(out, p)
			}
		}
	}

	return out
}

// sortedPositions flattens a position set into a row-major slice.
func sortedPositions(set map[Position]bool) []Position {
	out := make([]Position, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out
}
