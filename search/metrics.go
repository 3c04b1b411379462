package search

// recorder is the pure metrics accumulator of one run: it counts
// expansions, obstacle spawns, and steps, and stamps the totals into
// the terminal SearchResult exactly once. It has no side effects beyond
// its own counters and is read-only after finalization.
type recorder struct {
	explored  int
	obstacles int
	steps     int
	finalized bool
}

// nextStep advances and returns the 1-based step counter.
func (r *recorder) nextStep() int {
	r.steps++

	return r.steps
}

// expansion counts one explored-set commit.
func (r *recorder) expansion() {
	if !r.finalized {
		r.explored++
	}
}

// obstacle counts one successful injector spawn.
func (r *recorder) obstacle() {
	if !r.finalized {
		r.obstacles++
	}
}

// finalize stamps the accumulated totals into res and freezes the
// recorder. Later calls are ignored; the first terminal transition wins.
func (r *recorder) finalize(res *SearchResult) {
	if r.finalized {
		return
	}
	res.NodesExplored = r.explored
	res.ObstaclesEncountered = r.obstacles
	r.finalized = true
}

// metrics returns the current counter view.
func (r *recorder) metrics() Metrics {
	return Metrics{
		ExploredCount:        r.explored,
		ObstaclesEncountered: r.obstacles,
		ElapsedSteps:         r.steps,
	}
}
