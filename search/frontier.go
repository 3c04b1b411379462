package search

import (
	"container/heap"

	"github.com/katalvlaran/gridsearch/grid"
)

// node is one pending frontier entry. Each entry carries its own parent
// back-reference, accumulated cost, and depth, so bookkeeping is only
// committed to the explored structures at expansion time.
type node struct {
	pos    grid.Position
	parent grid.Position
	isRoot bool // true for the seeded start (and target) entries
	cost   float64
	depth  int
	seq    int // insertion order; breaks cost ties in the UCS heap
}

// frontier is the single property that differs per strategy: the
// ordered container of nodes awaiting expansion.
//
// Duplicate entries for one Position are permitted; the engine skips
// them at pop time when the Position is already explored. removeAt
// implements the replanning contract: dropping every pending entry at a
// newly obstructed Position.
type frontier interface {
	push(n node)
	pop() (node, bool)
	len() int
	removeAt(p grid.Position) int
	positions() []grid.Position
}

// fifoFrontier pops oldest-inserted first (BFS, Bidirectional).
type fifoFrontier struct {
	items []node
}

func newFIFOFrontier() *fifoFrontier { return &fifoFrontier{} }

func (f *fifoFrontier) push(n node) { f.items = append(f.items, n) }

func (f *fifoFrontier) pop() (node, bool) {
	if len(f.items) == 0 {
		return node{}, false
	}
	n := f.items[0]
	f.items = f.items[1:]

	return n, true
}

func (f *fifoFrontier) len() int { return len(f.items) }

func (f *fifoFrontier) removeAt(p grid.Position) int {
	return filterNodes(&f.items, p)
}

func (f *fifoFrontier) positions() []grid.Position { return nodePositions(f.items) }

// lifoFrontier pops most-recently-inserted first (DFS, DLS, IDDFS).
type lifoFrontier struct {
	items []node
}

func newLIFOFrontier() *lifoFrontier { return &lifoFrontier{} }

func (f *lifoFrontier) push(n node) { f.items = append(f.items, n) }

func (f *lifoFrontier) pop() (node, bool) {
	if len(f.items) == 0 {
		return node{}, false
	}
	last := len(f.items) - 1
	n := f.items[last]
	f.items = f.items[:last]

	return n, true
}

func (f *lifoFrontier) len() int { return len(f.items) }

func (f *lifoFrontier) removeAt(p grid.Position) int {
	return filterNodes(&f.items, p)
}

func (f *lifoFrontier) positions() []grid.Position { return nodePositions(f.items) }

// costFrontier pops lowest accumulated cost first, insertion order
// breaking ties (UCS). It follows the lazy-decrease-key pattern: a
// better route pushes a fresh entry and the stale one is skipped at pop
// time via the explored check.
type costFrontier struct {
	h nodeHeap
}

func newCostFrontier() *costFrontier {
	f := &costFrontier{h: make(nodeHeap, 0)}
	heap.Init(&f.h)

	return f
}

func (f *costFrontier) push(n node) { heap.Push(&f.h, n) }

func (f *costFrontier) pop() (node, bool) {
	if f.h.Len() == 0 {
		return node{}, false
	}

	return heap.Pop(&f.h).(node), true
}

func (f *costFrontier) len() int { return f.h.Len() }

func (f *costFrontier) removeAt(p grid.Position) int {
	kept := f.h[:0]
	removed := 0
	for _, n := range f.h {
		if n.pos == p {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	f.h = kept
	if removed > 0 {
		heap.Init(&f.h)
	}

	return removed
}

func (f *costFrontier) positions() []grid.Position { return nodePositions(f.h) }

// nodeHeap is a min-heap of nodes ordered by cost, then insertion seq.
type nodeHeap []node

// Len returns the number of items in the heap.
func (h nodeHeap) Len() int { return len(h) }

// Less orders by ascending cost; equal costs fall back to insertion order.
func (h nodeHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}

	return h[i].seq < h[j].seq
}

// Swap swaps two elements in the heap.
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push adds a new element x onto the heap; x must be of type node.
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(node)) }

// Pop removes and returns the smallest element from the heap.
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]

	return it
}

// filterNodes drops every entry at p from items, preserving order, and
// returns the number removed.
func filterNodes(items *[]node, p grid.Position) int {
	kept := (*items)[:0]
	removed := 0
	for _, n := range *items {
		if n.pos == p {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	*items = kept

	return removed
}

// nodePositions snapshots the Positions of items in container order.
func nodePositions(items []node) []grid.Position {
	out := make([]grid.Position, len(items))
	for i, n := range items {
		out[i] = n.pos
	}

	return out
}
