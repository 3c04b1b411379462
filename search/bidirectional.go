package search

import (
	"github.com/katalvlaran/gridsearch/grid"
)

// biSide is one direction of a bidirectional run: its own FIFO
// frontier, explored set, parent chain, and duplicate-push bookkeeping.
type biSide struct {
	frontier   *fifoFrontier
	explored   map[grid.Position]bool
	parents    map[grid.Position]grid.Position
	inFrontier map[grid.Position]int
}

// newBiSide seeds one side with its root position.
func newBiSide(root grid.Position) *biSide {
	s := &biSide{
		frontier:   newFIFOFrontier(),
		explored:   make(map[grid.Position]bool),
		parents:    make(map[grid.Position]grid.Position),
		inFrontier: make(map[grid.Position]int),
	}
	s.frontier.push(node{pos: root, isRoot: true})
	s.inFrontier[root]++

	return s
}

// biState pairs the forward (start-rooted) and backward
// (target-rooted) sides.
type biState struct {
	fwd, bwd *biSide
}

// newBiState builds both sides for g.
func newBiState(g *grid.Grid) *biState {
	return &biState{fwd: newBiSide(g.Start()), bwd: newBiSide(g.Target())}
}

// removeAt applies frontier replanning to both sides.
func (b *biState) removeAt(p grid.Position) {
	if b.fwd.frontier.removeAt(p) > 0 {
		delete(b.fwd.inFrontier, p)
	}
	if b.bwd.frontier.removeAt(p) > 0 {
		delete(b.bwd.inFrontier, p)
	}
}

// unionFrontier snapshots both frontiers, forward entries first.
func (b *biState) unionFrontier() []grid.Position {
	out := b.fwd.frontier.positions()

	return append(out, b.bwd.frontier.positions()...)
}

// biStep is one step of the bidirectional machine: one obstacle
// injection, then one expansion from each side in alternation. The run
// succeeds the moment a Position popped by one side is already in the
// opposite side's explored set; both partial depths are finalized FIFO
// distances at pop time, which is what makes the joined path minimal on
// unit-depth grids.
func (e *Engine) biStep() (StepRecord, error) {
	rec := StepRecord{Step: e.rec.nextStep()}

	// 1. Both frontiers exhausted: the components never met.
	if e.bi.fwd.frontier.len() == 0 && e.bi.bwd.frontier.len() == 0 {
		return e.emit(e.fail(rec, NoPath))
	}

	// 2. One injection covers both substeps; replanning hits both
	// frontiers.
	e.inject(&rec)

	// 3. Forward substep, then backward substep. A side with an empty
	// frontier simply sits out; the other may still reach a meeting.
	if done := e.biSubstep(e.bi.fwd, e.bi.bwd, &rec); done {
		return e.emit(e.biSucceed(rec))
	}
	if done := e.biSubstep(e.bi.bwd, e.bi.fwd, &rec); done {
		return e.emit(e.biSucceed(rec))
	}

	rec.Frontier = e.bi.unionFrontier()

	return e.emit(rec)
}

// biSubstep pops and expands one node from own. It reports true when
// the popped Position was already explored by other — the meeting that
// terminates the run. The meeting Position is stored in e.biMeet.
func (e *Engine) biSubstep(own, other *biSide, rec *StepRecord) bool {
	n, ok := own.frontier.pop()
	if !ok {
		return false
	}
	if own.inFrontier[n.pos] > 0 {
		own.inFrontier[n.pos]--
	}
	if !rec.HasCurrent {
		rec.Current, rec.HasCurrent = n.pos, true
	}

	// Duplicate suppression is per side.
	if own.explored[n.pos] {
		return false
	}

	own.explored[n.pos] = true
	if !n.isRoot {
		own.parents[n.pos] = n.parent
	}
	rec.ExploredDelta = append(rec.ExploredDelta, n.pos)
	e.rec.expansion()

	// Meeting test at pop time: expanded by both sides.
	if other.explored[n.pos] {
		e.biMeet = n.pos

		return true
	}

	for _, nbr := range e.grid.Neighbors(n.pos) {
		if own.explored[nbr] || own.inFrontier[nbr] > 0 {
			continue
		}
		own.frontier.push(node{pos: nbr, parent: n.pos})
		own.inFrontier[nbr]++
	}

	return false
}

// biSucceed finalizes a successful bidirectional run: the forward
// parent chain start→meet joined with the backward chain meet→target.
func (e *Engine) biSucceed(rec StepRecord) StepRecord {
	path := reconstructPath(e.bi.fwd.parents, e.biMeet)
	for cur := e.biMeet; ; {
		prev, ok := e.bi.bwd.parents[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}

	res := &SearchResult{
		Found:     true,
		Path:      path,
		TotalCost: pathCost(e.grid, path),
		Reason:    TargetFound,
	}
	rec = e.finish(rec, res)
	rec.Frontier = e.bi.unionFrontier()

	return rec
}
