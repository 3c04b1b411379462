// Package search implements the step-wise state machine shared by the
// six uninformed strategies: BFS, DFS, UCS, DLS, IDDFS, Bidirectional.
//
// The engine is cooperative: the caller advances it one step at a time
// via Step (or drives it to completion via Run), which permits pausing,
// speed control, and frame-synchronized rendering without the core
// depending on any of that.
package search

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/katalvlaran/gridsearch/grid"
)

// Engine owns the frontier, explored set, cost/depth bookkeeping, and
// path reconstruction of exactly one run. No state survives across
// independent runs; build a fresh Engine per run.
type Engine struct {
	grid     *grid.Grid
	strategy Strategy
	opts     Options
	spawner  *grid.Spawner

	frontier frontier
	// explored maps each expanded Position to the shallowest depth at
	// which it was expanded. Membership is permanent for the run; only
	// the depth tag may improve, and only for depth-bounded strategies.
	explored map[grid.Position]int
	parents  map[grid.Position]grid.Position
	// inFrontier counts pending entries per Position for the strategies
	// that suppress duplicate pushes (BFS, DFS).
	inFrontier map[grid.Position]int
	// bestCost tracks the cheapest discovered route per Position (UCS).
	bestCost map[grid.Position]float64
	seq      int

	// limit is the active depth bound: the configured limit for DLS,
	// the growing iteration limit for IDDFS, unused otherwise.
	limit int
	// cutoff records that the depth bound pruned at least one child in
	// the current iteration.
	cutoff bool

	status Status
	rec    recorder
	result *SearchResult

	bi *biState // non-nil only for Bidirectional
	// biMeet is the meeting Position of a successful bidirectional run.
	biMeet grid.Position
}

// New constructs an Engine for one run of strategy on g, applying any
// number of functional Options. Returns ErrGridNil, ErrUnknownStrategy,
// ErrOptionViolation, or grid.ErrProbability for invalid configuration.
// Configuration errors are rejected here, before any run begins.
func New(g *grid.Grid, strategy Strategy, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, ErrGridNil
	}

	// Build options and catch any invalid ones immediately.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	spawner, err := grid.NewSpawner(o.SpawnProbability, o.Rand)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		grid:     g,
		strategy: strategy,
		opts:     o,
		spawner:  spawner,
		status:   Initialized,
	}

	switch strategy {
	case BFS, DFS, UCS, DLS, IDDFS:
		e.frontier = newFrontier(strategy)
		e.explored = make(map[grid.Position]int)
		e.parents = make(map[grid.Position]grid.Position)
		e.inFrontier = make(map[grid.Position]int)
		if strategy == UCS {
			e.bestCost = map[grid.Position]float64{g.Start(): 0}
		}
		if strategy == DLS {
			e.limit = o.DepthLimit
		}
		if strategy == IDDFS {
			e.limit = 1
		}
		e.seed(g.Start())
	case Bidirectional:
		e.bi = newBiState(g)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
	}

	return e, nil
}

// newFrontier selects the frontier discipline for a unidirectional strategy.
func newFrontier(s Strategy) frontier {
	switch s {
	case UCS:
		return newCostFrontier()
	case DFS, DLS, IDDFS:
		return newLIFOFrontier()
	default:
		return newFIFOFrontier()
	}
}

// seed pushes the root entry for p onto the frontier.
func (e *Engine) seed(p grid.Position) {
	e.frontier.push(node{pos: p, isRoot: true, seq: e.nextSeq()})
	e.inFrontier[p]++
}

// nextSeq returns the next insertion sequence number.
func (e *Engine) nextSeq() int {
	e.seq++

	return e.seq
}

// Strategy returns the strategy this engine runs.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Status returns the current lifecycle state.
func (e *Engine) Status() Status { return e.status }

// Metrics returns the live counter view: explored expansions, obstacle
// encounters, and elapsed steps so far.
func (e *Engine) Metrics() Metrics { return e.rec.metrics() }

// Result returns the terminal SearchResult, or ErrNotFinished while
// the engine is still Initialized or Running.
func (e *Engine) Result() (*SearchResult, error) {
	if e.result == nil {
		return nil, ErrNotFinished
	}

	return e.result, nil
}

// Run advances the machine step by step until a terminal state, a
// context cancellation, or an OnStep hook error. NoPath and Cutoff are
// terminal outcomes, not errors: Run still returns their SearchResult.
func (e *Engine) Run() (*SearchResult, error) {
	for {
		// cancellation check (once per step boundary)
		select {
		case <-e.opts.Ctx.Done():
			return nil, e.opts.Ctx.Err()
		default:
		}

		rec, err := e.Step()
		if err != nil {
			return nil, err
		}
		if rec.Terminal != nil {
			return rec.Terminal, nil
		}
	}
}

// Step advances the machine by exactly one step:
//
//  1. Empty frontier → Failed (NoPath, or Cutoff when the depth bound
//     pruned; IDDFS restarts a deeper iteration instead).
//  2. Invoke the obstacle injector once; a spawn removes every pending
//     frontier entry at the obstructed Position (replanning). Explored
//     membership is never revoked.
//  3. Pop one node per the strategy discipline.
//  4. A Position already explored is discarded (the step still counts).
//  5. Mark explored; popping the target terminates with the
//     reconstructed path and its summed step cost.
//  6. Push unexplored, unblocked neighbors in the fixed expansion order.
//
// Step on a terminal engine returns ErrEngineDone. An OnStep hook error
// is returned alongside the record it rejected.
func (e *Engine) Step() (StepRecord, error) {
	if e.status == Succeeded || e.status == Failed {
		return StepRecord{}, ErrEngineDone
	}
	e.status = Running

	if e.strategy == Bidirectional {
		return e.biStep()
	}

	return e.uniStep()
}

// uniStep is one step of the BFS/DFS/UCS/DLS/IDDFS machine.
func (e *Engine) uniStep() (StepRecord, error) {
	rec := StepRecord{Step: e.rec.nextStep()}

	// 1. Exhausted frontier: terminal failure, or a deeper IDDFS iteration.
	if e.frontier.len() == 0 {
		if e.strategy == IDDFS && e.cutoff {
			e.restartIteration()
			rec.Frontier = e.frontier.positions()

			return e.emit(rec)
		}
		reason := NoPath
		if e.depthBounded() && e.cutoff {
			reason = Cutoff
		}

		return e.emit(e.fail(rec, reason))
	}

	// 2. Obstacle injection and frontier replanning.
	e.inject(&rec)

	// 3. Pop per discipline. Replanning may have emptied the frontier;
	// the exhaustion transition then happens on the next step.
	n, ok := e.frontier.pop()
	if !ok {
		rec.Frontier = e.frontier.positions()

		return e.emit(rec)
	}
	if e.inFrontier[n.pos] > 0 {
		e.inFrontier[n.pos]--
	}
	rec.Current, rec.HasCurrent = n.pos, true

	// 4. Duplicate suppression: skip entries already expanded (for
	// depth-bounded strategies, already expanded at least as shallow).
	if e.isExplored(n.pos, n.depth) {
		rec.Frontier = e.frontier.positions()

		return e.emit(rec)
	}

	// 5. Expansion. Popping the target ends the run.
	e.markExplored(n, &rec)
	if n.pos == e.grid.Target() {
		return e.emit(e.succeed(rec))
	}

	// 6. Push eligible neighbors per discipline.
	e.expand(n)
	rec.Frontier = e.frontier.positions()

	return e.emit(rec)
}

// depthBounded reports whether the strategy carries a depth bound.
func (e *Engine) depthBounded() bool {
	return e.strategy == DLS || e.strategy == IDDFS
}

// inject invokes the spawner once and applies the replanning contract:
// every pending frontier entry at the obstructed Position is dropped.
func (e *Engine) inject(rec *StepRecord) {
	p, ok := e.spawner.MaybeSpawn(e.grid)
	if !ok {
		return
	}
	e.rec.obstacle()
	rec.Spawned, rec.DidSpawn = p, true
	if e.bi != nil {
		e.bi.removeAt(p)

		return
	}
	if e.frontier.removeAt(p) > 0 {
		delete(e.inFrontier, p)
	}
}

// isExplored reports whether popping (or pushing) pos at depth is
// redundant. Depth-bounded strategies only treat a Position as settled
// at equal-or-shallower depth; a shallower rediscovery must still be
// expanded or IDDFS could miss the minimal-depth path.
func (e *Engine) isExplored(pos grid.Position, depth int) bool {
	d, ok := e.explored[pos]
	if !ok {
		return false
	}
	if e.depthBounded() {
		return d <= depth
	}

	return true
}

// markExplored commits n to the explored set and its parent link to the
// parent map. Membership never shrinks; for depth-bounded strategies a
// shallower re-expansion improves the depth tag and parent link.
func (e *Engine) markExplored(n node, rec *StepRecord) {
	if _, seen := e.explored[n.pos]; !seen {
		rec.ExploredDelta = append(rec.ExploredDelta, n.pos)
	}
	e.explored[n.pos] = n.depth
	if !n.isRoot {
		e.parents[n.pos] = n.parent
	}
	e.rec.expansion()
}

// expand pushes the eligible neighbors of n. LIFO disciplines receive
// them in reverse so pop order follows the fixed expansion order.
func (e *Engine) expand(n node) {
	neighbors := e.grid.Neighbors(n.pos)
	if _, lifo := e.frontier.(*lifoFrontier); lifo {
		for i := len(neighbors) - 1; i >= 0; i-- {
			e.push(n, neighbors[i])
		}

		return
	}
	for _, nbr := range neighbors {
		e.push(n, nbr)
	}
}

// push applies the per-strategy admission rule for child nbr of n and,
// when admitted, enqueues it with its parent back-reference.
func (e *Engine) push(n node, nbr grid.Position) {
	childDepth := n.depth + 1
	if e.isExplored(nbr, childDepth) {
		return
	}

	switch e.strategy {
	case UCS:
		// Lazy decrease-key: admit only strictly cheaper routes; the
		// stale heap entry is skipped at pop time.
		newCost := n.cost + e.grid.StepCost(n.pos, nbr)
		if best, ok := e.bestCost[nbr]; ok && newCost >= best {
			return
		}
		e.bestCost[nbr] = newCost
		e.frontier.push(node{pos: nbr, parent: n.pos, cost: newCost, depth: childDepth, seq: e.nextSeq()})
	case DLS, IDDFS:
		if childDepth > e.limit {
			e.cutoff = true

			return
		}
		e.frontier.push(node{pos: nbr, parent: n.pos, depth: childDepth, seq: e.nextSeq()})
	default: // BFS, DFS
		if e.inFrontier[nbr] > 0 {
			return
		}
		e.frontier.push(node{pos: nbr, parent: n.pos, depth: childDepth, seq: e.nextSeq()})
		e.inFrontier[nbr]++
	}
}

// restartIteration resets per-iteration state for the next IDDFS bound:
// fresh frontier, fresh explored set and parents, limit+1, reseeded
// start. Accumulated metrics (expansions, obstacles, steps) carry over.
func (e *Engine) restartIteration() {
	e.limit++
	e.cutoff = false
	e.frontier = newLIFOFrontier()
	e.explored = make(map[grid.Position]int)
	e.parents = make(map[grid.Position]grid.Position)
	e.inFrontier = make(map[grid.Position]int)
	e.seed(e.grid.Start())
}

// succeed finalizes a successful run on rec and returns it.
func (e *Engine) succeed(rec StepRecord) StepRecord {
	path := reconstructPath(e.parents, e.grid.Target())

	return e.finish(rec, &SearchResult{
		Found:     true,
		Path:      path,
		TotalCost: pathCost(e.grid, path),
		Reason:    TargetFound,
	})
}

// fail finalizes an unsuccessful run on rec and returns it.
func (e *Engine) fail(rec StepRecord, reason Reason) StepRecord {
	return e.finish(rec, &SearchResult{Reason: reason})
}

// finish stamps accumulated metrics into res, transitions the machine
// to its terminal state, and attaches the result to rec.
func (e *Engine) finish(rec StepRecord, res *SearchResult) StepRecord {
	e.rec.finalize(res)
	e.result = res
	if res.Found {
		e.status = Succeeded
	} else {
		e.status = Failed
	}
	rec.Terminal = res
	if e.frontier != nil {
		rec.Frontier = e.frontier.positions()
	}

	return rec
}

// emit forwards rec to the OnStep hook and returns it. A hook error is
// surfaced to the caller alongside the rejected record.
func (e *Engine) emit(rec StepRecord) (StepRecord, error) {
	if err := e.opts.OnStep(rec); err != nil {
		return rec, fmt.Errorf("search: OnStep hook at step %d: %w", rec.Step, err)
	}

	return rec, nil
}

// reconstructPath follows parent back-references from dest to the
// chain's root and returns the path root→dest.
func reconstructPath(parents map[grid.Position]grid.Position, dest grid.Position) []grid.Position {
	path := []grid.Position{dest}
	for cur := dest; ; {
		prev, ok := parents[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse to get root → dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// pathCost sums the step costs along path.
func pathCost(g *grid.Grid, path []grid.Position) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += g.StepCost(path[i-1], path[i])
	}

	return total
}
