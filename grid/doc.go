// Package grid models a rectangular 2-D search environment with static
// walls, a start, a target, and dynamic obstacles that may appear while
// a search is running.
//
// What:
//
//   - Grid wraps a width×height cell map with exactly one Start and one Target.
//   - Cells classify as Empty, Wall, DynamicObstacle, Start, or Target.
//   - Neighbors enumerates the fixed 8-direction expansion order
//     {Up, Right, Down, BottomRight, Left, TopLeft, TopRight, BottomLeft}.
//   - Spawner injects dynamic obstacles with a configurable per-step
//     probability from an injectable random source.
//
// Why:
//
//   - Strategy comparison: every search strategy shares one walkability
//     and neighbor-order contract, so differences are purely algorithmic.
//   - Replanning studies: mid-run obstacle spawns exercise frontier
//     invalidation without touching already-explored cells.
//   - Reproducibility: a fixed seed replays the exact spawn sequence.
//
// Invariants:
//
//   - Width/height, walls, start, and target never change after New.
//   - Start and target are always walkable; obstacles never cover them.
//   - Dynamic obstacles are only added, never removed, within one run;
//     ResetDynamicObstacles clears them between independent runs.
//   - The expansion order is load-bearing: it fixes tie-breaks for
//     every strategy and must be reproduced exactly.
//
// Complexity:
//
//   - IsWalkable, StateAt, StepCost, AddDynamicObstacle: O(1).
//   - Neighbors: O(1) (eight probes).
//   - Spawner.MaybeSpawn: O(W×H) per invocation.
//
// Errors:
//
//   - ErrDimensions: width or height below 1.
//   - ErrOutOfBounds: start, target, or explicit wall outside the grid.
//   - ErrSameStartTarget: start and target share a cell.
//   - ErrWallPosition: explicit wall on start or target.
//   - ErrProbability: spawn probability outside [0,1].
//   - ErrOptionViolation: invalid functional option.
package grid
