// Package search implements six uninformed search strategies over a
// grid.Grid behind one step-wise execution contract.
//
// What:
//
//   - Engine: a cooperative state machine (Initialized → Running →
//     {Succeeded, Failed}) advanced one step at a time by its caller.
//   - Strategies: BFS, DFS, UCS, DLS, IDDFS, Bidirectional — the only
//     varying piece is the frontier discipline and termination rule.
//   - Replanning: a dynamic obstacle spawned mid-run invalidates every
//     pending frontier entry at that cell; explored cells stay explored.
//   - Recorder: explored count, obstacle encounters, step count, and
//     the immutable terminal SearchResult.
//   - RunAll: sequential strategy comparison on identical terrain.
//
// Why:
//
//   - Algorithm teaching and comparison: identical grids, identical
//     neighbor order, identical step semantics — differences in path
//     length, cost, and explored count are purely strategic.
//   - Visualization: every step emits a StepRecord (frontier snapshot,
//     explored delta, spawn event) to an OnStep hook; the caller
//     controls pacing, pausing, and rendering.
//
// Step anatomy (uniform across strategies):
//
//	1. empty frontier → Failed ("no path exists" / "cutoff");
//	2. one obstacle injection + frontier replanning;
//	3. one pop per discipline;
//	4. duplicate pops are discarded;
//	5. mark explored, terminate on target with path and Σ step cost;
//	6. push eligible neighbors in the fixed expansion order.
//
// Complexity (V = W×H cells, E ≤ 8V edges):
//
//   - BFS/DFS/DLS: O(V + E) pops/pushes; O(V) memory.
//   - UCS: O((V + E) log V) via the lazy-decrease-key min-heap.
//   - IDDFS: O(d·(V + E)) across iterations; O(V) memory per iteration.
//   - Bidirectional: O(V + E) total across both sides.
//   - Each injector invocation adds O(V) for candidate enumeration.
//
// Errors:
//
//   - ErrGridNil: nil grid pointer.
//   - ErrUnknownStrategy: strategy outside the six variants.
//   - ErrOptionViolation: invalid functional option.
//   - ErrEngineDone: Step on a terminal machine (contract violation).
//   - ErrNotFinished: Result before a terminal transition.
//
// NoPath and Cutoff are terminal outcomes carried in SearchResult, not
// errors: "no path exists" means the reachable component is exhausted,
// "cutoff" means the depth limit — not true unreachability — stopped a
// depth-limited run.
package search
